package slog

import (
	"context"
	"log/slog"
)

type levelOverrideKey struct{}

// WithLogLevel returns a context whose log records are filtered by level alone,
// ignoring per-package rules. Handy for turning on debug output for one call.
func WithLogLevel(ctx context.Context, level slog.Level) context.Context {
	return context.WithValue(ctx, levelOverrideKey{}, level)
}

// LogLevelFromContext returns the level override stored by WithLogLevel.
func LogLevelFromContext(ctx context.Context) (slog.Level, bool) {
	level, ok := ctx.Value(levelOverrideKey{}).(slog.Level)
	return level, ok
}
