package molsel

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/molsel/geom"
)

// Logger wraps slog.Logger with molsel-specific context.
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
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithStructure adds structure size fields to the logger.
func (l *Logger) WithStructure(units, elements int) *Logger {
	return &Logger{
		Logger: l.Logger.With("units", units, "elements", elements),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithRadius adds a radius field to the logger.
func (l *Logger) WithRadius(r float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("radius", r),
	}
}

// LogFind logs a radius query.
func (l *Logger) LogFind(ctx context.Context, center geom.Vec3, radius float64, hits int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "find failed",
			"center", center,
			"radius", radius,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "find completed",
		"center", center,
		"radius", radius,
		"hits", hits,
	)
}

// LogCheck logs an existence query.
func (l *Logger) LogCheck(ctx context.Context, center geom.Vec3, radius float64, found bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "check failed",
			"center", center,
			"radius", radius,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "check completed",
		"center", center,
		"radius", radius,
		"found", found,
	)
}

// LogNearest logs a k-nearest query.
func (l *Logger) LogNearest(ctx context.Context, center geom.Vec3, k, hits int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "nearest failed",
			"center", center,
			"k", k,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "nearest completed",
		"center", center,
		"k", k,
		"hits", hits,
	)
}

// LogExtend logs a selection extension.
func (l *Logger) LogExtend(ctx context.Context, granularity string, before, after int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "extend failed",
			"granularity", granularity,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "extend completed",
		"granularity", granularity,
		"before", before,
		"after", after,
	)
}

// LogQuery logs compiling and evaluating an expression.
func (l *Logger) LogQuery(ctx context.Context, bytes, selected int, err error) {
	if err != nil {
		l.WarnContext(ctx, "query rejected",
			"bytes", bytes,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "query evaluated",
		"bytes", bytes,
		"selected", selected,
	)
}
