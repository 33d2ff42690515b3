package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/reymi-tech/multitenant/pkg/logger"
)

// HealthCheckHandler returns a handler usable for both liveness and
// readiness probes: with no dependency probes it answers ALIVE, otherwise
// it runs every probe and answers READY or NOT_READY.
func HealthCheckHandler(ctx context.Context, log *slog.Logger, probes ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(probes) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, probe := range probes {
			if err := probe(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
