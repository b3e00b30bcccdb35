package middleware

import (
	"log/slog"
	"net/http"

	"github.com/kestrelworks/tasklist-api/internal/api/shared"
	"github.com/kestrelworks/tasklist-api/internal/platform/logger"
)

// TraceIDHeader is the response header carrying the request's trace ID so
// clients can quote it when reporting a failure.
const TraceIDHeader = "X-Trace-ID"

// NewTraceMiddleware returns middleware that assigns each request a trace ID.
// The ID is stored in the request context, echoed in the X-Trace-ID response
// header, and baked into a request-scoped logger that downstream handlers
// retrieve via logger.FromContext. Apply it early in the middleware chain so
// every subsequent handler logs with the same correlation field.
func NewTraceMiddleware(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := baseLogger.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
