// Package logger builds the zerolog logger the CLI commands share.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ldo/go0r/internal/config"
)

// Setup builds a logger per the logging configuration. Output goes to
// stderr so command output on stdout stays machine-readable.
func Setup(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
