package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// zerologAdapter backs the Logger interface with rs/zerolog. Output is JSON
// lines by default; APP_ENV=dev switches to the human-readable console
// writer.
type zerologAdapter struct {
	z zerolog.Logger
}

// NewZerologLogger returns a Logger that tags every line with the component
// name. LOG_LEVEL (debug, info, warn, error) bounds the emitted severity and
// defaults to debug.
func NewZerologLogger(component string) Logger {
	return newZerologLogger(component, os.Stdout)
}

func newZerologLogger(component string, out io.Writer) Logger {
	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	level := zerolog.DebugLevel
	if l, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && l != zerolog.NoLevel {
		level = l
	}
	z := zerolog.New(out).Level(level).With().Timestamp().Str("component", component).Logger()
	return &zerologAdapter{z: z}
}

func (l *zerologAdapter) Debugf(format string, args ...any) { l.z.Debug().Msgf(format, args...) }

func (l *zerologAdapter) Debugw(msg string, fields map[string]any) {
	l.z.Debug().Fields(fields).Msg(msg)
}

func (l *zerologAdapter) Infof(format string, args ...any) { l.z.Info().Msgf(format, args...) }

func (l *zerologAdapter) Warnf(format string, args ...any) { l.z.Warn().Msgf(format, args...) }

func (l *zerologAdapter) Errorf(format string, args ...any) { l.z.Error().Msgf(format, args...) }
