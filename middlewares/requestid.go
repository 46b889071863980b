package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

type requestIDCtxKey struct{}

// Incoming headers checked for an existing request ID, in order.
var requestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// RequestID ensures every request carries an ID: reuse the inbound
// header when present, otherwise generate a UUID. The ID is stored in
// the context and echoed on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			for _, h := range requestIDHeaders {
				if v := r.Header.Get(h); v != "" {
					id = v
					break
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", id)
			ctx := context.WithValue(r.Context(), requestIDCtxKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the request ID set by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}

// RequestIDExtractor adapts the request ID for logger context
// extraction, so every log line emitted during a request carries it.
func RequestIDExtractor() func(ctx context.Context) []slog.Attr {
	return func(ctx context.Context) []slog.Attr {
		if id := RequestIDFromContext(ctx); id != "" {
			return []slog.Attr{slog.String("request_id", id)}
		}
		return nil
	}
}
