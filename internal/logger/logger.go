// Package logger provides the structured logging interface used across the
// application, backed by the standard library's slog.
package logger

import (
	"context"
	"io"
	"log/slog"
)

// Level is a logging severity level.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// LoggerInterface is the logging contract consumed by every component.
// Key-value pairs follow slog's alternating key/value convention.
type LoggerInterface interface {
	Debug(ctx context.Context, msg string, kv ...any)
	Info(ctx context.Context, msg string, kv ...any)
	Warn(ctx context.Context, msg string, kv ...any)
	Error(ctx context.Context, msg string, kv ...any)
}

// Logger is the slog-backed implementation of LoggerInterface.
type Logger struct {
	slog *slog.Logger
}

func levelToSlog(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a Logger writing JSON records to w, filtered at level, tagging
// every record with appName and any extra static key/value pairs.
func New(w io.Writer, level Level, appName string, extra ...any) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelToSlog(level)})
	base := slog.New(handler).With("app", appName)
	if len(extra) > 0 {
		base = base.With(extra...)
	}
	return &Logger{slog: base}
}

func (l *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	l.slog.DebugContext(ctx, msg, kv...)
}

func (l *Logger) Info(ctx context.Context, msg string, kv ...any) {
	l.slog.InfoContext(ctx, msg, kv...)
}

func (l *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	l.slog.WarnContext(ctx, msg, kv...)
}

func (l *Logger) Error(ctx context.Context, msg string, kv ...any) {
	l.slog.ErrorContext(ctx, msg, kv...)
}
