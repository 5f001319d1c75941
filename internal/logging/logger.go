package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with pairset-specific helpers so run output uses
// consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler to stderr at info level is used.
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

// NewTextLogger creates a Logger that writes human-readable text to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that writes JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// New builds a Logger from config strings: format is "text" or "json",
// level is one of debug, info, warn, error.
func New(w io.Writer, format, level string) (*Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	switch format {
	case "", "text":
		return NewTextLogger(w, lvl), nil
	case "json":
		return NewJSONLogger(w, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// LogShards logs shard discovery for one root.
func (l *Logger) LogShards(ctx context.Context, root string, shards int) {
	l.InfoContext(ctx, "shards discovered",
		"root", root,
		"shards", shards,
	)
}

// LogProgress logs a throughput checkpoint.
func (l *Logger) LogProgress(ctx context.Context, batch, samples int, samplesPerSec, dataMS, foldMS float64) {
	l.InfoContext(ctx, "progress",
		"batch", batch,
		"samples", samples,
		"samples_per_sec", samplesPerSec,
		"data_ms", dataMS,
		"fold_ms", foldMS,
	)
}

// LogSkipped logs a sample dropped because its payload could not be used.
func (l *Logger) LogSkipped(ctx context.Context, key string, err error) {
	l.DebugContext(ctx, "sample skipped",
		"key", key,
		"error", err,
	)
}

// LogCount logs one row of a label frequency table.
func (l *Logger) LogCount(ctx context.Context, label, count, total int, meanIntensity float64) {
	share := 0.0
	if total > 0 {
		share = float64(count) / float64(total)
	}
	l.InfoContext(ctx, "label count",
		"label", label,
		"count", count,
		"share", share,
		"mean_intensity", meanIntensity,
	)
}

// LogSummary logs the end of a run.
func (l *Logger) LogSummary(ctx context.Context, samples, skipped, labels int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "tally failed",
			"samples", samples,
			"skipped", skipped,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "tally completed",
		"samples", samples,
		"skipped", skipped,
		"labels", labels,
	)
}
