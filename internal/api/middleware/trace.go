// Package middleware contains the HTTP middleware applied by the api router.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/overboard/internal/api/shared"
	"github.com/phrazzld/overboard/internal/platform/logger"
)

// NewTraceMiddleware adds a trace ID to the request context, together with
// a child of base tagged with that trace ID. Apply it early so every later
// handler logs with the trace ID.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			log := base.With(slog.String("trace_id", shared.GetTraceID(ctx)))

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(logger.WithContext(ctx, log)))
		})
	}
}
