// Package apierrors converts every failure raised anywhere downstream into
// one stable, non-leaking, client-facing response shape, correlated to
// structured logs via a trace identifier.
//
// # Taxonomy
//
// All failures classify into exactly one of five categories: DATABASE,
// TENANT, CONNECTION, VALIDATION, SYSTEM. Classify is a total function from
// any error to a Mapping {status, message, code, category}; its rules run
// first-match-wins over framework HTTP errors, the closed set of domain
// tenant errors, storage-driver SQLSTATEs, entity-not-found sentinels, and
// message heuristics, with an INTERNAL_SERVER_ERROR/SYSTEM fallback. The
// ErrorCode values are a stable contract for programmatic client handling;
// the Message values are display-only.
//
// SYSTEM-category responses always carry the fixed generic message, never
// the underlying error text. That is the information-hiding contract for
// internal failures.
//
// # Sinks
//
// Responder is the single terminal sink, usable from both transport
// runtimes with identical semantics:
//
//   - Write / Handler / Middleware for net/http
//   - UnaryServerInterceptor for gRPC servers
//
// Every handled failure emits exactly one structured ERROR record (with a
// process memory snapshot for 5xx), sets X-Trace-ID and, when a tenant was
// resolved, X-Tenant-Code, and sends one response body. The sink itself
// never fails: detail extraction, logging, and encoding all degrade
// gracefully.
package apierrors
