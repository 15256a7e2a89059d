// Package logging provides subsystem-prefixed log output.
package logging

import (
	"io"
	"log"
	"os"
)

var (
	debugEnabled = os.Getenv("STUDY_DEBUG") == "true"
	logger       = log.New(os.Stderr, "", log.LstdFlags)
)

// SetOutput redirects all log output.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetDebug toggles Debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// Info logs an informational message (always shown)
func Info(subsystem, format string, args ...any) {
	logger.Printf("[%s] "+format, append([]any{subsystem}, args...)...)
}

// Warn logs a recoverable problem.
func Warn(subsystem, format string, args ...any) {
	logger.Printf("[%s] warning: "+format, append([]any{subsystem}, args...)...)
}

// Debug logs a debug message (only shown if STUDY_DEBUG=true)
func Debug(subsystem, format string, args ...any) {
	if debugEnabled {
		logger.Printf("[%s] "+format, append([]any{subsystem}, args...)...)
	}
}
