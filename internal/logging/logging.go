// Package logging builds the charmbracelet/log loggers used by the CLI and the terminal UI.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every console log line.
const Prefix = "todolist"

// New creates a console logger writing to w.
// Without debug nothing is written, so command output stays clean.
func New(w io.Writer, debug bool) *log.Logger {
	if !debug {
		return Discard()
	}
	return log.NewWithOptions(w, log.Options{
		Level:  log.DebugLevel,
		Prefix: Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OpenFile creates a logfmt logger appending to path.
// The returned file must be closed by the caller.
func OpenFile(path, level string) (*log.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
	})
	return logger, f, nil
}

// ParseLevel parses a string log level. Unknown values fall back to info.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
