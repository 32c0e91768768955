package requestid

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey struct{}

// WithContext stores id in ctx. The value is also published under chi's
// request ID key so chi middleware and handlers see the same correlation ID.
func WithContext(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, middleware.RequestIDKey, id)
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request ID stored in ctx, falling back to one set by
// chi's RequestID middleware. Returns "" when neither is present.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return middleware.GetReqID(ctx)
}
