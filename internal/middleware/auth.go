package middleware

import (
	"net/http"
	"strings"

	"blueprint/internal/auth"
	"blueprint/internal/httputil"
)

// DefaultExcludedPaths are exempt from identity enforcement: the service
// banner, health check, login endpoint, and API documentation paths.
var DefaultExcludedPaths = []string{"/", "/health", "/api/login", "/docs", "/openapi.json", "/redoc"}

// Auth intercepts every request, verifies the bearer token, and attaches the
// decoded claims to the request context. OPTIONS requests and excluded paths
// pass through unauthenticated; everything else is rejected with a 401.
func Auth(tokens *auth.TokenService, excluded []string) func(http.Handler) http.Handler {
	if excluded == nil {
		excluded = DefaultExcludedPaths
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS preflight never carries credentials.
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if isExcludedPath(r.URL.Path, excluded) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing Authorization header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				unauthorized(w, "invalid Authorization header format, use 'Bearer <token>'")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				// Structural, signature, expiry, and purpose failures are
				// deliberately indistinguishable here.
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithIdentity(r, claims))
		})
	}
}

// unauthorized writes a 401 with permissive CORS headers so browser clients
// can read the body instead of seeing an opaque CORS failure.
func unauthorized(w http.ResponseWriter, detail string) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Set("Access-Control-Allow-Methods", "*")
	h.Set("Access-Control-Allow-Headers", "*")

	httputil.RespondError(w, http.StatusUnauthorized, detail)
}

// isExcludedPath matches exactly or by path prefix. "/" only ever matches
// exactly, since every path starts with it.
func isExcludedPath(path string, excluded []string) bool {
	for _, e := range excluded {
		if path == e || strings.HasPrefix(path, e+"/") {
			return true
		}
	}
	return false
}
