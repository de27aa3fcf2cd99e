package globalord

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/globalord/model"
)

// Logger wraps slog.Logger with globalord-specific context.
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

// WithSnapshot adds a snapshot field to the logger.
func (l *Logger) WithSnapshot(id model.SnapshotID) *Logger {
	return &Logger{
		Logger: l.Logger.With("snapshot", id.String()),
	}
}

// LogBuild logs the outcome of one merge build.
func (l *Logger) LogBuild(ctx context.Context, id model.SnapshotID, segments int, terms uint64, bytes int64, took time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "global ordinals build failed",
			"snapshot", id.String(),
			"segments", segments,
			"took", took,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "global ordinals built",
			"snapshot", id.String(),
			"segments", segments,
			"terms", terms,
			"bytes", bytes,
			"took", took,
		)
	}
}

// LogEviction logs a view leaving the cache.
func (l *Logger) LogEviction(id model.SnapshotID, bytes int64) {
	l.Debug("global ordinals evicted",
		"snapshot", id.String(),
		"bytes", bytes,
	)
}
