package trace

import "context"

type contextKey struct{}

// WithContext returns a context carrying the trace ID.
func WithContext(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, contextKey{}, traceID)
}

// FromContext returns the trace ID from the context, or "" when absent.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, ok := ctx.Value(contextKey{}).(string)
	if !ok {
		return ""
	}
	return traceID
}
