package models

import "github.com/golang-jwt/jwt/v5"

// TokenPurpose tags every access token so other token kinds issued under the
// same secret can never be replayed against the API.
const TokenPurpose = "access"

// AccessClaims is the identity embedded in a session token. The subject is the
// user ID. Claims are immutable once decoded and live for a single request.
type AccessClaims struct {
	Username string `json:"name"`
	Purpose  string `json:"purpose"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *AccessClaims) UserID() string {
	return c.Subject
}
