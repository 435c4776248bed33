package clustergo

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustergo-specific context.
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
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithStrategy adds a strategy field to the logger.
func (l *Logger) WithStrategy(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", name),
	}
}

// WithTarget adds a target cluster count field to the logger.
func (l *Logger) WithTarget(target int) *Logger {
	return &Logger{
		Logger: l.Logger.With("target", target),
	}
}

// WithImageCount adds an image count field to the logger.
func (l *Logger) WithImageCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("images", count),
	}
}

// LogRun logs a completed clustering run.
func (l *Logger) LogRun(ctx context.Context, rounds, clusters int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"rounds", rounds,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "clustering completed",
			"rounds", rounds,
			"clusters", clusters,
			"elapsed", elapsed,
		)
	}
}

// LogLoad logs a corpus load operation.
func (l *Logger) LogLoad(ctx context.Context, listName string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "corpus load failed",
			"list", listName,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "corpus loaded",
			"list", listName,
			"images", count,
		)
	}
}

// LogSnapshot logs a snapshot write operation.
func (l *Logger) LogSnapshot(ctx context.Context, filename string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"filename", filename,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"filename", filename,
		)
	}
}
