package common

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger is the leveled logging capability every component accepts through its WithLogger option.
type Logger interface {
	DebugEnabled() bool
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// LevelFromFlags maps the CLI verbosity flags onto a slog level.
//   - vv: debug
//   - v: info
//   - q: error
//   - (default: warn)
//
// Flags are checked in that order, so vv wins over q.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// DefaultLogger writes leveled text records through log/slog.
type DefaultLogger struct {
	prefix string
	log    *slog.Logger
}

// NewDefaultLogger creates a logger writing to stderr at the given minimum level.
//
// Parameters:
//   - prefix: component name attached to every record (may be empty)
//   - level: minimum level that is written
//
// Returns:
//   - *DefaultLogger: the logger
func NewDefaultLogger(prefix string, level slog.Level) *DefaultLogger {
	return NewWriterLogger(os.Stderr, prefix, level)
}

// NewWriterLogger creates a logger writing to w. Tests use it with a bytes.Buffer.
//
// Parameters:
//   - w: destination of the text records
//   - prefix: component name attached to every record (may be empty)
//   - level: minimum level that is written
//
// Returns:
//   - *DefaultLogger: the logger
func NewWriterLogger(w io.Writer, prefix string, level slog.Level) *DefaultLogger {
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if prefix != "" {
		l = l.With("component", prefix)
	}
	return &DefaultLogger{prefix: prefix, log: l}
}

// With returns a child logger that carries an extra component name.
//
// Parameters:
//   - component: name of the sub-component
//
// Returns:
//   - *DefaultLogger: the child logger
func (l *DefaultLogger) With(component string) *DefaultLogger {
	name := component
	if l.prefix != "" {
		name = l.prefix + "." + component
	}
	return &DefaultLogger{prefix: name, log: l.log.With("sub", component)}
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.log.Enabled(context.Background(), slog.LevelDebug)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...))
}

type nopLogger struct{}

// NewNopLogger returns a logger that discards everything. It is the default for every component.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

// LoggerOrNop returns l, or a no-op logger when l is nil.
func LoggerOrNop(l Logger) Logger {
	if l == nil {
		return NewNopLogger()
	}
	return l
}
