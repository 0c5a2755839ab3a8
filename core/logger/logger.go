// Package logger defines the logging boundary of the engine. Core packages
// depend only on this interface; the zerolog adapter lives in infra.
package logger

// Logger is the leveled logging interface threaded through the planner and
// its adapters. Debugw carries structured fields, everything else is printf
// style.
type Logger interface {
	Debugf(format string, args ...any)
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
