package logger

import corelogger "github.com/visitplan/visitplan/core/logger"

// Logger aliases the core interface so infra callers need a single import.
type Logger = corelogger.Logger

// NopLogger discards everything. Tests use it where log output is noise.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns the zerolog-backed Logger for the given component.
func New(component string) Logger {
	return NewZerologLogger(component)
}
