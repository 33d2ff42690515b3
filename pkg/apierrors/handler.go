package apierrors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/reymi-tech/multitenant/pkg/logger"
	"github.com/reymi-tech/multitenant/pkg/trace"
)

// HeaderTenantCode is set on failure responses when the request had a
// resolved tenant.
const HeaderTenantCode = "X-Tenant-Code"

// Responder is the terminal sink for request failures. Given any error it
// classifies, sanitizes, logs one structured record, sets correlation
// headers, and writes exactly one ErrorResponse. It never fails itself:
// every sub-step degrades gracefully rather than preventing a response.
type Responder struct {
	log    *slog.Logger
	userID func(ctx context.Context) string
}

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

// WithUserID registers a hook that extracts the caller identity from the
// request context for log correlation.
func WithUserID(fn func(ctx context.Context) string) ResponderOption {
	return func(h *Responder) {
		if fn != nil {
			h.userID = fn
		}
	}
}

// NewResponder creates a Responder logging through the given logger.
func NewResponder(log *slog.Logger, opts ...ResponderOption) *Responder {
	if log == nil {
		log = slog.Default()
	}
	h := &Responder{log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Write handles a failed request: it derives the correlation context,
// classifies err, emits one ERROR log record, sets X-Trace-ID (always) and
// X-Tenant-Code (when known), and sends the ErrorResponse body with the
// mapped status.
func (h *Responder) Write(w http.ResponseWriter, r *http.Request, err error) {
	lc := NewLogContext(r)
	if h.userID != nil {
		lc.UserID = h.userID(r.Context())
	}

	m := Classify(err)
	resp := BuildResponse(err, m, lc)

	h.logFailure(r.Context(), err, m, lc, "")

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set(trace.Header, lc.TraceID)
	if lc.TenantCode != "" {
		w.Header().Set(HeaderTenantCode, lc.TenantCode)
	}
	w.WriteHeader(resp.Error.StatusCode)

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		// Status and headers are already out; all that is left is to record
		// that the body write failed.
		h.log.LogAttrs(r.Context(), slog.LevelError, "failed to write error response",
			logger.Error(encErr),
			logger.TraceID(lc.TraceID),
		)
	}
}

// Handler adapts an error-returning handler function into an http.Handler
// with h as its failure sink.
func (h *Responder) Handler(fn func(w http.ResponseWriter, r *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.Write(w, r, err)
		}
	})
}

// Middleware recovers panics from downstream handlers and routes them
// through the same classification pipeline as returned errors.
func (h *Responder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}

				lc := NewLogContext(r)
				m := Classify(err)
				h.logFailure(r.Context(), err, m, lc, string(debug.Stack()))

				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.Header().Set(trace.Header, lc.TraceID)
				if lc.TenantCode != "" {
					w.Header().Set(HeaderTenantCode, lc.TenantCode)
				}
				resp := BuildResponse(err, m, lc)
				w.WriteHeader(resp.Error.StatusCode)
				_ = json.NewEncoder(w).Encode(resp)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// logFailure emits the single structured ERROR record for a handled
// failure. Server-category failures additionally capture a memory snapshot
// for performance triage.
func (h *Responder) logFailure(ctx context.Context, err error, m Mapping, lc LogContext, stack string) {
	attrs := make([]slog.Attr, 0, 14)
	attrs = append(attrs,
		logger.Category(string(m.Category)),
		logger.ErrorCode(m.ErrorCode),
		logger.StatusCode(m.StatusCode),
		logger.Error(err),
		logger.TraceID(lc.TraceID),
		logger.TenantCode(lc.TenantCode),
		logger.UserID(lc.UserID),
		slog.String("method", lc.Method),
		slog.String("url", lc.URL),
		logger.Component("error_responder"),
	)
	if lc.IP != "" {
		attrs = append(attrs, slog.String("ip", lc.IP))
	}
	if lc.UserAgent != "" {
		attrs = append(attrs, slog.String("user_agent", lc.UserAgent))
	}
	if stack != "" {
		attrs = append(attrs, slog.String("stack", stack))
	}
	if m.StatusCode >= 500 {
		attrs = append(attrs, memorySnapshot())
	}

	h.log.LogAttrs(ctx, slog.LevelError, "request failed", attrs...)
}

// memorySnapshot captures current process memory usage for 5xx triage.
func memorySnapshot() slog.Attr {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return logger.Group("memory",
		slog.Uint64("heap_alloc_bytes", ms.HeapAlloc),
		slog.Uint64("heap_sys_bytes", ms.HeapSys),
		slog.Uint64("total_alloc_bytes", ms.TotalAlloc),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	)
}
