// Package ctxlog carries a request-scoped zap.Logger in a context.Context.
package ctxlog

import (
	"context"

	"go.uber.org/zap" // Logging.
)

type loggerKey struct{}

var nop = zap.NewNop()

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithFields returns a copy of ctx whose Logger has fields added.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	return WithLogger(ctx, L(ctx).With(fields...))
}

// WithName returns a copy of ctx whose Logger has name appended.
func WithName(ctx context.Context, name string) context.Context {
	return WithLogger(ctx, L(ctx).Named(name))
}

// L returns the Logger carried by ctx, or a no-op Logger if there is none.
func L(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return nop
}
