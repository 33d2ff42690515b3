// Package tenant determines which tenant an inbound request belongs to and
// propagates that decision through the request context.
//
// Resolution runs as connection-establishing middleware: exactly one
// configured strategy (header, subdomain, JWT claim, or custom function)
// extracts a candidate tenant identifier, a default-tenant fallback applies
// when nothing was resolvable, and the result is written into the request
// context as a TenantContext {ID, Schema}. Failing to resolve a tenant is a
// valid outcome, not an error: resolution never rejects a request.
//
// # Transport adapters
//
// The decision procedure exists once, operating on the minimal Carrier
// capability. Two thin adapters bind it to concrete transports with
// identical semantics:
//
//   - Middleware for net/http (chi-compatible)
//   - UnaryServerInterceptor for gRPC servers
//
// Both attach X-Tenant-ID / X-Tenant-Schema to the response on successful
// resolution.
//
// # Usage
//
//	cfg := tenant.ResolutionConfig{Strategy: tenant.StrategyHeader}
//
//	r := chi.NewRouter()
//	r.Use(tenant.Middleware(cfg,
//		tenant.WithValidator(registry),
//		tenant.WithCacheTTL(10*time.Minute),
//	))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		tc, ok := tenant.FromContext(r.Context())
//		if !ok {
//			// no tenant was resolvable and none was configured as default
//			return
//		}
//		_ = tc.TenantSchema
//	}
//
// # Trust boundary
//
// The JWT strategy decodes the token payload WITHOUT verifying its
// signature; this layer has no key material. Verification is the caller's
// responsibility, and the extracted identifier must be treated as untrusted
// until a Validator confirms it against the registry.
//
// # Validation
//
// Validator abstracts tenant existence checks. Two interchangeable
// implementations exist: the pgx-backed store in modules/registry (local)
// and RemoteValidator (HTTP calls to a central registry). Both treat
// soft-deleted tenants as non-existent and degrade to false/absent on any
// failure instead of propagating transport errors.
package tenant
