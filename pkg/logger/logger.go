// Package logger provides the structured logger shared by all storefront
// components. It wraps zerolog behind a small chainable surface so services
// can accumulate fields without caring about the backend.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is an immutable logging handle. With* methods return derived
// loggers; the receiver is never mutated.
type Logger struct {
	zl zerolog.Logger
}

// New creates a logger writing JSON lines to w, tagged with the given module
// name.
func New(w io.Writer, module string) *Logger {
	zl := zerolog.New(w).With().Timestamp().Str("module", module).Logger()
	return &Logger{zl: zl}
}

// NewDefault creates a logger writing human-readable output to stderr. The
// level is taken from STOREFRONT_LOG_LEVEL (default info).
func NewDefault(module string) *Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(levelFromEnv()).
		With().Timestamp().Str("module", module).Logger()
	return &Logger{zl: zl}
}

// Nop returns a logger that discards everything. Intended for tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func levelFromEnv() zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("STOREFRONT_LOG_LEVEL"))) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithField returns a logger with an additional structured field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// WithError returns a logger with the error attached.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{zl: l.zl.With().AnErr("error", err).Logger()}
}

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zl.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zl.Error().Msg(msg) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}
