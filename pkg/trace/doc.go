// Package trace generates and propagates per-request trace identifiers that
// correlate client-visible error responses with structured log records.
//
// A trace ID has the form mt_<epochMillis>_<random base36>. Middleware
// adopts a valid upstream X-Trace-ID or mints a new one, echoes it on the
// response, and stores it in the request context. LoggerExtractor plugs the
// ID into pkg/logger so every log line carries trace_id automatically.
package trace
