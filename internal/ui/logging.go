package ui

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Logger struct {
	Debug bool
	zl    zerolog.Logger
}

func NewLogger(debug bool) *Logger {
	return NewLoggerTo(os.Stderr, debug)
}

func NewLoggerTo(w io.Writer, debug bool) *Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}

	return &Logger{Debug: debug, zl: zerolog.New(out).Level(level)}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(strings.TrimSuffix(format, "\n"), args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(strings.TrimSuffix(format, "\n"), args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(strings.TrimSuffix(format, "\n"), args...)
}
