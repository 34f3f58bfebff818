package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/app"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/server"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	serverPort   = flag.Int("port", 0, "Server port (overrides config)")
	serverPortP  = flag.Int("p", 0, "Server port (shorthand, overrides config)")
	serverHost   = flag.String("host", "", "Server host (overrides config)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	common.InstallCrashHandler("")
	defer common.RecoverWithCrashFile()

	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("DocVegas version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	finalPort := *serverPort
	if *serverPortP != 0 {
		finalPort = *serverPortP
	}

	// Startup order: config (defaults -> files -> env), CLI overrides, logger, banner
	if len(configFiles) == 0 {
		if _, err := os.Stat("docvegas.toml"); err == nil {
			configFiles = append(configFiles, "docvegas.toml")
		} else if _, err := os.Stat("deployments/local/docvegas.toml"); err == nil {
			configFiles = append(configFiles, "deployments/local/docvegas.toml")
		}
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		arbor.NewLogger().Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	common.ApplyFlagOverrides(config, finalPort, *serverHost)

	logger := common.InitLogger(config)
	common.PrintBanner(config)

	logger.Info().
		Strs("config_files", configFiles).
		Str("host", config.Server.Host).
		Int("port", config.Server.Port).
		Str("environment", config.Environment).
		Msg("Application configuration loaded")

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close application")
		}
	}()

	srv := server.New(application)

	serverErr := make(chan error, 1)
	common.SafeGo(logger, "http-server", func() {
		serverErr <- srv.Start()
	})

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)).
		Msg("Server ready - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info().Msg("Interrupt signal received")
	case err := <-serverErr:
		if err != nil {
			logger.Error().Err(err).Msg("Server stopped unexpectedly")
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}

	logger.Info().Msg("Server stopped")
}
