package models

import "time"

// Account is the persisted user record: identity, profile fields, the
// bcrypt hash of the password, and the currently active refresh token
// (empty string when the account has no session).
type Account struct {
	ID           string
	Name         string
	Username     string
	Bio          string
	Age          int
	PasswordHash string
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
