package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. env picks the default level (debug in dev),
// level overrides it when it names a zerolog level, and format "console"
// switches to the human-readable writer.
func New(env, level, format string) zerolog.Logger {
	return NewWithWriter(os.Stdout, env, level, format)
}

func NewWithWriter(w io.Writer, env, level, format string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(w).With().Timestamp().Logger()

	lvl := zerolog.InfoLevel
	if env == "dev" {
		lvl = zerolog.DebugLevel
	}
	if level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
			lvl = parsed
		}
	}
	return l.Level(lvl)
}
