package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelWarn)

	logger.Debug(context.Background(), "debug message")
	logger.Info(context.Background(), "info message")
	logger.Warn(context.Background(), "warn message")
	logger.Error(context.Background(), "error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, slog.LevelDebug)

	scoped := logger.WithOperation("write").WithPath("/a/b")
	scoped.Debug(context.Background(), "created directory", "dir", "/a")

	out := buf.String()
	assert.Contains(t, out, "operation=write")
	assert.Contains(t, out, "path=/a/b")
	assert.Contains(t, out, "dir=/a")

	// The parent logger is not affected.
	buf.Reset()
	logger.Debug(context.Background(), "plain")
	assert.NotContains(t, buf.String(), "operation=write")
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	require.NotNil(t, logger)

	// None of these should panic.
	logger.Debug(context.Background(), "x")
	logger.With("k", "v").Info(context.Background(), "x")
	New(nil).Error(context.Background(), "x")

	var nilLogger *Logger
	nilLogger.Warn(context.Background(), "x")
	assert.Nil(t, nilLogger.With("k", "v"))
}
