package common

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
)

// CrashLogDir is where RecoverWithCrashFile writes its reports
var CrashLogDir = "./logs"

// InstallCrashHandler sets and creates the crash report directory.
// Call at the start of main, followed by defer RecoverWithCrashFile().
func InstallCrashHandler(logDir string) {
	if logDir != "" {
		CrashLogDir = logDir
	}
	if err := os.MkdirAll(CrashLogDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "CRASH: failed to create log directory: %v\n", err)
	}
}

// RecoverWithCrashFile writes a crash report for a panic on the calling goroutine and exits
func RecoverWithCrashFile() {
	if r := recover(); r != nil {
		WriteCrashFile(r, stack(false))
		os.Exit(1)
	}
}

// WriteCrashFile writes the panic value, stack and runtime stats to
// CrashLogDir and returns the file path, or "" when only stderr could be used.
func WriteCrashFile(panicVal interface{}, stackTrace string) string {
	now := time.Now()

	var report strings.Builder
	fmt.Fprintf(&report, "=== DOCVEGAS CRASH REPORT ===\nTime: %s\nVersion: %s\n\n", now.Format(time.RFC3339), GetFullVersion())
	fmt.Fprintf(&report, "=== PANIC ===\n%v\n\n", panicVal)
	fmt.Fprintf(&report, "=== STACK ===\n%s\n", stackTrace)
	fmt.Fprintf(&report, "=== ALL GOROUTINES ===\n%s\n", stack(true))

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	fmt.Fprintf(&report, "=== RUNTIME ===\nGoroutines: %d\nGOOS/GOARCH: %s/%s\nAlloc: %d MB\nNumGC: %d\n",
		runtime.NumGoroutine(), runtime.GOOS, runtime.GOARCH, mem.Alloc/1024/1024, mem.NumGC)

	crashPath := filepath.Join(CrashLogDir, fmt.Sprintf("crash-%s.log", now.Format("2006-01-02T15-04-05")))
	if err := os.WriteFile(crashPath, []byte(report.String()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "CRASH: failed to write crash file: %v\n%s", err, report.String())
		return ""
	}

	fmt.Fprintf(os.Stderr, "\n!!! FATAL CRASH - report saved to %s !!!\nPanic: %v\n", crashPath, panicVal)
	return crashPath
}

// SafeGo runs fn on a new goroutine, logging instead of crashing on panic
func SafeGo(logger arbor.ILogger, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("goroutine", name).
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", stack(false)).
					Msg("Recovered from panic in goroutine")
			}
		}()

		fn()
	}()
}

func stack(all bool) string {
	buf := make([]byte, 64*1024)
	for {
		n := runtime.Stack(buf, all)
		if n < len(buf) || len(buf) >= 64<<20 {
			return string(buf[:n])
		}
		buf = make([]byte, len(buf)*2)
	}
}
