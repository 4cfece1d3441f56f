// Package logger builds the zerolog loggers used by the command line tools.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Format selects how log events are rendered.
type Format string

const (
	// FormatConsole renders human readable lines.
	FormatConsole Format = "console"
	// FormatJSON renders one JSON object per event.
	FormatJSON Format = "json"
)

// New returns a logger writing to w at level.
func New(w io.Writer, level zerolog.Level, format Format) zerolog.Logger {
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Verbose returns debug when v is set and level otherwise.
func Verbose(v bool, level zerolog.Level) zerolog.Level {
	if v && level > zerolog.DebugLevel {
		return zerolog.DebugLevel
	}
	return level
}
