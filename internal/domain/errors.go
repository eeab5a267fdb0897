package domain

import "errors"

// Sentinel errors for the service and repository layers - match with errors.Is().
// Handlers translate these into HTTP status codes; anything unmatched becomes a
// generic 500 so persistence details never leak to clients.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
