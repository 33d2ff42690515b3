package trace

import "net/http"

// Middleware adopts the upstream trace ID when one is present and valid, or
// generates a fresh one. The ID is echoed on the response and stored in the
// request context for log correlation.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(Header)
		if !Valid(traceID) {
			traceID = New()
		}
		w.Header().Set(Header, traceID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), traceID)))
	})
}
