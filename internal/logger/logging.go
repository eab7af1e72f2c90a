// Package logger provides prefixed charmbracelet/log loggers for the
// engine's packages.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a default charm logger that respects the global log level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithLevel creates a charm logger pinned to an explicit level.
func NewWithLevel(prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
	})
}
