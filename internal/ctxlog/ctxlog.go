// Package ctxlog carries a slog.Logger through context.Context so library
// code can log without global state.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type to prevent collisions with other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context, falling back to the
// process default when none was embedded.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
