// Package logger builds the application's zerolog logger.
//
// Request handlers never receive the logger directly: the request middleware
// stores a request-scoped copy in the context and code further down reads it
// back with zerolog.Ctx.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing human-friendly console output when local is
// set and JSON lines otherwise. An unknown level falls back to info.
func New(level string, local bool) zerolog.Logger {
	return NewWithWriter(level, local, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(level string, local bool, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	if local {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "chirp").
		Logger()
}
