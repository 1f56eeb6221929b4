package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory-rest-api/internal/middleware"
)

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	var seen string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected a generated request ID in the context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("response header %q does not match context ID %q", got, seen)
	}
}

func TestRequestIDHonoursCallerSuppliedID(t *testing.T) {
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := middleware.GetRequestID(r.Context()); got != "client-42" {
			t.Fatalf("expected caller ID in context, got %q", got)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-42" {
		t.Fatalf("expected caller ID echoed, got %q", got)
	}
}
