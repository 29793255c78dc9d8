// Package logging provides the structured logger shared by hosts and watchers.
package logging

import (
	"context"
	"log/slog"
)

// Logger provides structured logging for hosts and the watch hub.
// A nil *Logger and the no-op logger both discard everything.
type Logger struct {
	logger *slog.Logger
	fields []any
}

// New wraps logger. Level filtering is left to its handler. A nil logger
// yields the no-op logger.
func New(logger *slog.Logger) *Logger {
	if logger == nil {
		return NewNopLogger()
	}
	return &Logger{logger: logger}
}

// NewNopLogger creates a no-op logger that discards all log messages.
func NewNopLogger() *Logger {
	return &Logger{}
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.logger.Enabled(ctx, level) {
		return
	}

	allArgs := make([]any, len(l.fields)+len(args))
	copy(allArgs, l.fields)
	copy(allArgs[len(l.fields):], args)
	l.logger.Log(ctx, level, msg, allArgs...)
}

// Debug logs debug-level messages
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args...)
}

// Info logs info-level messages
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs warning-level messages
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args...)
}

// Error logs error-level messages
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, msg, args...)
}

// With returns a logger with additional context fields.
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.logger == nil {
		return l
	}

	fields := make([]any, len(l.fields)+len(args))
	copy(fields, l.fields)
	copy(fields[len(l.fields):], args)

	return &Logger{
		logger: l.logger,
		fields: fields,
	}
}

// WithOperation returns a logger with operation context
func (l *Logger) WithOperation(operation string) *Logger {
	return l.With("operation", operation)
}

// WithPath returns a logger with path context
func (l *Logger) WithPath(path string) *Logger {
	return l.With("path", path)
}
