// Package logger provides leveled printf-style logging for the CLI and
// connector code. Debug output is suppressed unless verbose mode is enabled.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

var (
	verbose atomic.Bool

	std = log.New(os.Stderr, "", log.LstdFlags)
)

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// Verbose reports whether debug output is enabled.
func Verbose() bool {
	return verbose.Load()
}

// Debug logs a debug message. No-op unless verbose mode is enabled.
func Debug(format string, args ...any) {
	if !verbose.Load() {
		return
	}
	std.Output(2, "DEBUG "+fmt.Sprintf(format, args...)) //nolint:errcheck // best-effort logging
}

// Info logs an informational message.
func Info(format string, args ...any) {
	std.Output(2, "INFO  "+fmt.Sprintf(format, args...)) //nolint:errcheck // best-effort logging
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	std.Output(2, "WARN  "+fmt.Sprintf(format, args...)) //nolint:errcheck // best-effort logging
}

// Error logs an error message.
func Error(format string, args ...any) {
	std.Output(2, "ERROR "+fmt.Sprintf(format, args...)) //nolint:errcheck // best-effort logging
}
