package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blueprint/internal/domain"
	"blueprint/internal/domain/models"
)

// DefaultTokenTTL is how long an issued access token stays valid. Expiry is
// the only invalidation mechanism; there is no revocation list.
const DefaultTokenTTL = 30 * time.Minute

// TokenService issues and verifies HS256 session tokens. The signing secret is
// process-wide, loaded once at startup, and read-only afterwards.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

// NewTokenService creates a token service. The secret must be non-empty;
// cmd/server enforces that via config validation before getting here.
func NewTokenService(secret string, ttl time.Duration, logger *slog.Logger) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("signing secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs an access token for the given user. The token carries the user
// ID as subject, the username, issued-at and expiry timestamps, and the fixed
// access purpose tag.
func (s *TokenService) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := &models.AccessClaims{
		Username: username,
		Purpose:  models.TokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify parses and validates a token string. Structural, signature, expiry,
// and purpose failures all collapse into the same domain.ErrUnauthorized so
// callers cannot distinguish which check failed.
func (s *TokenService) Verify(tokenString string) (*models.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AccessClaims{}, func(t *jwt.Token) (any, error) {
		// Reject algorithm confusion - this service only ever signs with HS256.
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		s.logger.Debug("token rejected", "error", err)
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.AccessClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" || claims.Purpose != models.TokenPurpose {
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
