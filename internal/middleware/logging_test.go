package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogging_PreservesStatusAndBody(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"explicit status", http.StatusTeapot, "short and stout"},
		{"implicit 200", 0, "hello"},
		{"no body", http.StatusNoContent, ""},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whatever", nil)
			Logging(logger)(inner).ServeHTTP(rec, req)

			want := tt.status
			if want == 0 {
				want = http.StatusOK
			}
			if rec.Code != want {
				t.Errorf("status = %d, want %d", rec.Code, want)
			}
			if rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestLogging_SetsRequestID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := Logging(logger)(inner)

	first := httptest.NewRecorder()
	wrapped.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/a", nil))
	second := httptest.NewRecorder()
	wrapped.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/b", nil))

	a := first.Header().Get("X-Request-ID")
	b := second.Header().Get("X-Request-ID")
	if a == "" || b == "" {
		t.Fatal("expected X-Request-ID on every response")
	}
	if a == b {
		t.Errorf("expected distinct request IDs, both were %q", a)
	}
}
