package log

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with a component attribute so every subsystem
// tags its own lines.
type Logger struct {
	*slog.Logger
}

// New creates the root logger. Debug level is enabled in dev mode.
func New(dev bool) *Logger {
	level := slog.LevelInfo
	if dev {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component)}
}

// With returns a child logger with extra attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}
