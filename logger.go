package biomtab

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with biomtab-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithPath adds a source path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// WithShape adds counts-matrix shape fields to the logger.
func (l *Logger) WithShape(rows, cols int) *Logger {
	return &Logger{
		Logger: l.Logger.With("features", rows, "samples", cols),
	}
}

// LogDecode logs a decode operation.
func (l *Logger) LogDecode(ctx context.Context, source string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "decode failed",
			"source", source,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "decode completed",
			"source", source,
		)
	}
}

// LogConvert logs a conversion operation.
func (l *Logger) LogConvert(ctx context.Context, rows, cols int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "conversion failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "conversion completed",
			"features", rows,
			"samples", cols,
		)
	}
}
