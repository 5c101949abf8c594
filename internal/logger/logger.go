// Package logger wraps zerolog.Logger with the constructors used by the
// SDK transport and the ffc CLI.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger embeds zerolog.Logger so the full zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// New returns a JSON logger writing to os.Stderr, tagged with the given role.
// An unknown level falls back to info.
func New(role, level string) *Logger {
	return NewWithWriter(os.Stderr, role, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, role, level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(w).Level(lvl).With().
		Str("role", role).
		Timestamp().
		Logger()
	return &Logger{l}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
