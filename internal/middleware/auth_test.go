package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blueprint/internal/auth"
	"blueprint/internal/httputil"
)

func newTestChain(t *testing.T) (*auth.TokenService, http.Handler) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := auth.NewTokenService("test-secret", auth.DefaultTokenTTL, logger)
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := httputil.Identity(r); claims != nil {
			w.Header().Set("X-Test-Subject", claims.Subject)
		}
		w.WriteHeader(http.StatusOK)
	})

	return tokens, Auth(tokens, DefaultExcludedPaths)(next)
}

func TestAuth_ExcludedPaths(t *testing.T) {
	_, h := newTestChain(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"root exact", http.MethodGet, "/", http.StatusOK},
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"login", http.MethodPost, "/api/login", http.StatusOK},
		{"docs prefix", http.MethodGet, "/docs/anything", http.StatusOK},
		{"options preflight", http.MethodOptions, "/api/chats", http.StatusOK},
		{"protected route", http.MethodGet, "/api/chats", http.StatusUnauthorized},
		{"root is not a prefix for everything", http.MethodGet, "/api/other", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestAuth_RejectsBadCredentials(t *testing.T) {
	tokens, h := newTestChain(t)

	expiredSvc, err := auth.NewTokenService("other-secret", auth.DefaultTokenTTL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}
	foreignToken, err := expiredSvc.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	validToken, err := tokens.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc123", http.StatusUnauthorized},
		{"no scheme", validToken, http.StatusUnauthorized},
		{"invalid token", "Bearer not-a-token", http.StatusUnauthorized},
		{"wrong signature", "Bearer " + foreignToken, http.StatusUnauthorized},
		{"valid token", "Bearer " + validToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			if tt.wantStatus == http.StatusUnauthorized {
				// Browser clients must be able to read the 401 body.
				if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
					t.Errorf("expected permissive CORS header on 401, got %q", got)
				}
				if !strings.Contains(rec.Header().Get("Content-Type"), "problem+json") {
					t.Errorf("expected problem+json body, got %q", rec.Header().Get("Content-Type"))
				}
			}
		})
	}
}

func TestAuth_AttachesIdentity(t *testing.T) {
	tokens, h := newTestChain(t)

	token, err := tokens.Issue("user-42", "bob")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Test-Subject"); got != "user-42" {
		t.Errorf("expected identity subject 'user-42' in context, got %q", got)
	}
}
