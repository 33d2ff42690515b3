package apierrors

import (
	"net/http"
	"time"

	"github.com/reymi-tech/multitenant/pkg/clientip"
	"github.com/reymi-tech/multitenant/pkg/tenant"
	"github.com/reymi-tech/multitenant/pkg/trace"
)

// LogContext is the correlation context derived once per failure from the
// inbound request. Immutable after construction.
type LogContext struct {
	TraceID    string
	TenantCode string
	UserID     string
	RequestID  string
	UserAgent  string
	IP         string
	Method     string
	URL        string
	Timestamp  time.Time
}

// NewLogContext derives the correlation context from an HTTP request. A
// trace ID is generated when none was resolved upstream, so every failure
// is correlatable even without the trace middleware installed.
func NewLogContext(r *http.Request) LogContext {
	lc := LogContext{
		RequestID: r.Header.Get("X-Request-ID"),
		UserAgent: r.UserAgent(),
		IP:        clientip.GetIP(r),
		Method:    r.Method,
		URL:       r.URL.String(),
		Timestamp: time.Now().UTC(),
	}

	lc.TraceID = trace.FromContext(r.Context())
	if lc.TraceID == "" {
		lc.TraceID = trace.New()
	}

	if tc, ok := tenant.FromContext(r.Context()); ok {
		lc.TenantCode = tc.TenantID
	}

	return lc
}
