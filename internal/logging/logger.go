// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

// Package logging provides the zerolog-based logger shared by every Pulseboard
// package.
//
// The global logger is configured once from main() and is safe to use before
// that call (it falls back to JSON at info level on stderr):
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Str("chart", id).Msg("Chart mounted")
//
// Handlers and services should prefer the context-aware form so request IDs
// travel with every line:
//
//	logging.Ctx(ctx).Warn().Err(err).Str("dataset", name).Msg("Dataset fetch failed")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event is
// never written.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error, fatal, panic.
	Level string

	// Format is the output format: json or console.
	Format string

	// Caller includes caller file and line number in logs.
	Caller bool

	// Timestamp enables timestamps in log output.
	Timestamp bool

	// Output is the writer for log output. Default: os.Stderr
	Output io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Caller:    false,
		Timestamp: true,
		Output:    os.Stderr,
	}
}

// current holds the global logger. Reads never block a concurrent Init.
var current atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	Init(DefaultConfig())
}

// Init configures the global logger. Calling it again reconfigures it.
func Init(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.MessageFieldName = "message"

	output := cfg.Output
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	zctx := zerolog.New(output).With().Str("service", "pulseboard")
	if cfg.Timestamp {
		zctx = zctx.Timestamp()
	}
	if cfg.Caller {
		zctx = zctx.Caller()
	}
	logger := zctx.Logger()
	current.Store(&logger)
}

// parseLevel accepts zerolog level names case-insensitively plus "warning".
// Anything unrecognized means info.
func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func global() *zerolog.Logger {
	return current.Load()
}

// Debug starts a new message with debug level.
func Debug() *zerolog.Event { return global().Debug() }

// Info starts a new message with info level.
func Info() *zerolog.Event { return global().Info() }

// Warn starts a new message with warning level.
func Warn() *zerolog.Event { return global().Warn() }

// Error starts a new message with error level.
func Error() *zerolog.Event { return global().Error() }

// Fatal starts a new message with fatal level; os.Exit(1) follows the write.
func Fatal() *zerolog.Event { return global().Fatal() }

// NewTestLogger creates a logger that writes to w, for assertions on output.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
