package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger creates a new zerolog logger with console output. The level
// defaults to info and can be overridden with BANDPIX_LOG_LEVEL.
func NewLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	l := log.Output(output).With().Timestamp().Logger()

	if level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("BANDPIX_LOG_LEVEL"))); err == nil && level != zerolog.NoLevel {
		return l.Level(level)
	}
	return l.Level(zerolog.InfoLevel)
}

// NewLoggerWithLevel creates a new logger with a specific log level
func NewLoggerWithLevel(level zerolog.Level) zerolog.Logger {
	logger := NewLogger()
	return logger.Level(level)
}
