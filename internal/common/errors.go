// Package common defines shared constants and sentinel errors used across
// the account service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("user already exist")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration/update validation errors. The messages are part of the
	// API contract and are returned verbatim in response envelopes.
	ErrInvalidUsername = errors.New("Invalid username. It must be between 6 and 16 characters, alphanumeric only.")
	ErrInvalidPassword = errors.New("Invalid password. It must be between 8 and 16 characters.")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
