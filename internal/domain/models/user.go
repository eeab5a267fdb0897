package models

import "time"

// User is an account that owns conversations. Users are created by the seed
// command (bootstrap path); the only mutation the system performs afterwards
// would be password rotation, which is not implemented.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialized
	CreatedAt    time.Time `json:"created_at"`
}
