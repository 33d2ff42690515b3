package trace

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a ContextExtractor for the logger
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if traceID := FromContext(ctx); traceID != "" {
			return slog.String("trace_id", traceID), true
		}
		return slog.Attr{}, false
	}
}
