package tenant

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// Response headers set by the adapters on every successful resolution.
const (
	HeaderTenantID     = "X-Tenant-ID"
	HeaderTenantSchema = "X-Tenant-Schema"
)

// Middleware creates net/http middleware that resolves the tenant for each
// request and stores it in the request context. Resolution is best-effort:
// it never rejects a request, even when the resolver misbehaves. Downstream
// code checks FromContext and decides whether a missing tenant is fatal.
func Middleware(rcfg ResolutionConfig, opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			tc, ok := cfg.establish(r.Context(), httpCarrier{r}, rcfg)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(HeaderTenantID, tc.TenantID)
			w.Header().Set(HeaderTenantSchema, tc.TenantSchema)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), tc)))
		})
	}
}

// establish runs resolution plus the default-tenant fallback and schema
// lookup. Panics inside resolution (a misbehaving custom resolver, usually)
// are recovered and treated as "continue without tenant".
func (cfg *config) establish(ctx context.Context, c Carrier, rcfg ResolutionConfig) (tc TenantContext, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			cfg.logger.LogAttrs(ctx, slog.LevelWarn, "tenant resolution panicked",
				slog.Any("panic", rec),
			)
			tc, ok = TenantContext{}, false
		}
	}()

	id, err := Resolve(c, rcfg)
	if err != nil {
		// Only ErrUnknownStrategy reaches here. A misconfigured strategy is
		// an operator mistake, not a request failure: warn and continue.
		cfg.logger.LogAttrs(ctx, slog.LevelWarn, "tenant resolution misconfigured",
			slog.String("strategy", string(rcfg.Strategy)),
			slog.Any("error", err),
		)
		id = ""
	}

	if id == "" {
		id = rcfg.DefaultTenant
	}
	if id == "" {
		return TenantContext{}, false
	}

	return TenantContext{TenantID: id, TenantSchema: cfg.schemaFor(ctx, id)}, true
}

// schemaFor looks up the registered schema name for a tenant code, falling
// back to the derived conventional name when no registry is wired or the
// lookup comes up empty.
func (cfg *config) schemaFor(ctx context.Context, code string) string {
	if cached, ok := cfg.cache.Get(ctx, code); ok && !cached.Deleted() {
		return cached.SchemaName
	}

	if cfg.validator != nil {
		if t, found := cfg.validator.FindByCode(ctx, code); found && !t.Deleted() {
			cfg.cache.Set(ctx, code, t, cfg.cacheTTL)
			return t.SchemaName
		}
	}

	return SchemaName(code)
}

// httpCarrier adapts *http.Request to the Carrier capability.
type httpCarrier struct {
	r *http.Request
}

func (c httpCarrier) Header(name string) string {
	return c.r.Header.Get(name)
}

func (c httpCarrier) Host() string {
	host := c.r.Host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}
