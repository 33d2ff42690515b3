// Package logger builds slog loggers with context-aware attribute injection.
//
// New constructs a logger from functional options (format, level, output,
// static attributes) and wraps its handler so registered ContextExtractor
// functions run on every log call, injecting request-scoped values such as
// trace_id and tenant_id. Each log call produces one atomic record, which
// keeps concurrent writes to the sink well-formed.
//
// The logger is an explicitly passed capability. Construct it once in the
// composition root and hand it to the components that log; tests substitute
// a capturing sink via WithOutput.
//
//	log := logger.New(
//		logger.WithProduction("registry"),
//		logger.WithContextExtractors(
//			trace.LoggerExtractor(),
//			tenant.LoggerExtractor(),
//		),
//	)
package logger
