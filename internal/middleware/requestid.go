package middleware

import (
	"context"
	"net/http"

	"inventory-rest-api/pkg/uid"
)

// requestIDHeader carries the request ID between client, server, and
// upstream proxies.
const requestIDHeader = "X-Request-ID"

// contextKey keeps middleware context values from colliding with other
// packages.
type contextKey string

// RequestIDKey is the context key under which the request ID is stored.
const RequestIDKey contextKey = "request_id"

// RequestID tags every request with an ID, honouring one supplied by the
// caller. The ID is echoed in the response header and stored in the request
// context for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uid.New()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID stored in ctx, or "" when the request
// did not pass through RequestID.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
