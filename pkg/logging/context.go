package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey struct{}

// Field is a key and value attached to a scoped logger.
type Field struct {
	Key   string
	Value any
}

// Organization scopes logs to an organization id.
func Organization(id int) Field { return Field{Key: "organization_id", Value: id} }

// Resource scopes logs to a resource kind, such as "cycle".
func Resource(kind string) Field { return Field{Key: "resource", Value: kind} }

// Operation scopes logs to a client operation.
func Operation(name string) Field { return Field{Key: "operation", Value: name} }

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger carried by ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return FromContextOr(ctx, Default())
}

// FromContextOr returns the logger carried by ctx, or fallback.
func FromContextOr(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return fallback
}

// Scope derives a logger from base with fields added and stores it in the
// returned context.
func Scope(ctx context.Context, base *zerolog.Logger, fields ...Field) (context.Context, *zerolog.Logger) {
	if base == nil {
		base = FromContext(ctx)
	}
	logger := withFields(base.With(), fields).Logger()
	return WithLogger(ctx, &logger), &logger
}

func withFields(ctx zerolog.Context, fields []Field) zerolog.Context {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			ctx = ctx.Str(f.Key, v)
		case int:
			ctx = ctx.Int(f.Key, v)
		case []int:
			ctx = ctx.Ints(f.Key, v)
		case bool:
			ctx = ctx.Bool(f.Key, v)
		case error:
			ctx = ctx.AnErr(f.Key, v)
		default:
			ctx = ctx.Interface(f.Key, v)
		}
	}
	return ctx
}
