// Package accounts declares the server-side repository contract for
// persisting account records.
package accounts

import (
	"context"

	"github.com/devesh1231/user-account-service/internal/server/models"
)

// Patch carries optional field updates for an account. Nil fields are
// left unchanged.
type Patch struct {
	Name         *string
	Username     *string
	Bio          *string
	Age          *int
	PasswordHash *string
}

// Repository defines operations for creating, resolving, and mutating
// account records.
type Repository interface {
	// Create inserts a new account and returns it with its generated id.
	// A duplicate username yields common.ErrorAlreadyExists.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByUsername returns the account with the given username, or
	// common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// GetByRefreshToken resolves a presented bearer token to the account
	// whose stored refresh token exactly equals it. Cleared (empty)
	// tokens never match. Returns common.ErrorNotFound when absent.
	GetByRefreshToken(ctx context.Context, token string) (*models.Account, error)

	// SetRefreshToken overwrites the account's stored refresh token in a
	// single atomic update and returns the updated record. Setting the
	// empty string revokes the session.
	SetRefreshToken(ctx context.Context, id string, token string) (*models.Account, error)

	// Update applies the non-nil fields of patch and returns the updated
	// record.
	Update(ctx context.Context, id string, patch Patch) (*models.Account, error)

	// Delete removes the account and returns the deleted record.
	Delete(ctx context.Context, id string) (*models.Account, error)
}
