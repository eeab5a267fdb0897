package httputil

import (
	"context"
	"net/http"

	"blueprint/internal/domain"
	"blueprint/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a request whose context carries the verified claims.
// Set by the auth middleware; the claims are immutable for the request's life.
func WithIdentity(r *http.Request, claims *models.AccessClaims) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, claims)
	return r.WithContext(ctx)
}

// Identity retrieves the verified claims, or nil if the auth middleware
// never ran for this request.
func Identity(r *http.Request) *models.AccessClaims {
	claims, _ := r.Context().Value(identityKey).(*models.AccessClaims)
	return claims
}

// RequireIdentity is the defensive check for handlers that need an
// authenticated caller: it fails explicitly instead of defaulting to an
// empty user when the middleware was bypassed.
func RequireIdentity(r *http.Request) (*models.AccessClaims, error) {
	claims := Identity(r)
	if claims == nil || claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
