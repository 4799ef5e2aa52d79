// Package config creates the loggers of the emulator and disassembler commands.
package config

import (
	"io"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates the command logger. Debug output takes precedence over
// quiet mode, which only shows errors.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// SessionLogger returns a logger with the level of the given logger that writes
// to w instead of the console. It is used while the terminal display owns the
// screen.
func SessionLogger(logger *log.Logger, w io.Writer) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = logger.Level()
	cfg.Output = w
	return log.NewWithConfig(cfg)
}
