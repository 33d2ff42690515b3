package tenant

import (
	"context"
	"log/slog"
)

// TenantContext is the request-scoped record of the resolved tenant. It is
// created at most once per request by a resolution adapter and read by
// downstream data-access logic and the error response builder.
type TenantContext struct {
	TenantID     string
	TenantSchema string
}

// contextKey prevents collisions with other packages using context values
type contextKey struct{}

// WithContext returns a context carrying the resolved tenant.
func WithContext(ctx context.Context, tc TenantContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// FromContext retrieves the resolved tenant from the context. Absence is a
// valid state: callers must not assume a tenant was resolvable.
func FromContext(ctx context.Context) (TenantContext, bool) {
	tc, ok := ctx.Value(contextKey{}).(TenantContext)
	return tc, ok
}

// IDFromContext provides fast access to the tenant ID without exposing the
// full context record.
func IDFromContext(ctx context.Context) (string, bool) {
	tc, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return tc.TenantID, true
}

// MustFromContext panics if no tenant is found. Use only in code paths that
// absolutely require a tenant to function.
func MustFromContext(ctx context.Context) TenantContext {
	tc, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return tc
}

// LoggerExtractor returns a function that enriches log records with the
// tenant ID from context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}
