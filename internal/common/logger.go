package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

const defaultTimeFormat = "15:04:05"

// InitLogger builds the arbor logger from the [logging] section
func InitLogger(config *Config) arbor.ILogger {
	timeFormat := config.Logging.TimeFormat
	if timeFormat == "" {
		timeFormat = defaultTimeFormat
	}

	logger := arbor.NewLogger()

	hasFileOutput := false
	hasStdoutOutput := false
	for _, output := range config.Logging.Output {
		switch output {
		case "file":
			hasFileOutput = true
		case "stdout", "console":
			hasStdoutOutput = true
		}
	}

	if hasFileOutput {
		if logsDir, err := logDirectory(); err != nil {
			fmt.Printf("Warning: Failed to prepare logs directory: %v\n", err)
		} else {
			logger = logger.WithFileWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeFile,
				FileName:   filepath.Join(logsDir, "docvegas.log"),
				TimeFormat: timeFormat,
				MaxSize:    50 * 1024 * 1024,
				MaxBackups: 3,
				TextOutput: true,
			})
		}
	}

	// Never leave the process silent
	if hasStdoutOutput || !hasFileOutput {
		logger = logger.WithConsoleWriter(consoleWriter(timeFormat))
	}

	logger = logger.WithLevelFromString(config.Logging.Level)

	return logger
}

func consoleWriter(timeFormat string) models.WriterConfiguration {
	return models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       timeFormat,
		TextOutput:       true,
		DisableTimestamp: false,
	}
}

// logDirectory resolves <exe dir>/logs and makes sure it exists
func logDirectory() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	logsDir := filepath.Join(filepath.Dir(execPath), "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return "", err
	}
	return logsDir, nil
}
