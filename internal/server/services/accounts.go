// Package services contains server-side business logic. This file implements
// AccountService, which handles registration, login, profile mutation, and
// the refresh-token session lifecycle.
package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"github.com/devesh1231/user-account-service/internal/common"
	"github.com/devesh1231/user-account-service/internal/dbx"
	"github.com/devesh1231/user-account-service/internal/server/auth"
	"github.com/devesh1231/user-account-service/internal/server/config"
	"github.com/devesh1231/user-account-service/internal/server/models"
	"github.com/devesh1231/user-account-service/internal/server/repositories/accounts"
	"github.com/devesh1231/user-account-service/internal/server/repositories/repomanager"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]{6,16}$`)

const (
	passwordMinLen = 8
	passwordMaxLen = 16
)

// TokenPair bundles the short-lived session token and the long-lived
// refresh token minted at login.
type TokenPair struct {
	SessionToken string
	RefreshToken string
}

// UpdateParams carries the optional profile mutations for Update. Nil
// pointer fields are left unchanged. A password change requires both
// Password (the current one) and NewPassword to be non-empty.
type UpdateParams struct {
	Name        *string
	Username    *string
	Bio         *string
	Age         *int
	Password    string
	NewPassword string
}

// AccountService provides the account lifecycle operations:
// - Register: validate input and create accounts
// - Login: verify credentials and mint tokens
// - Authenticate: resolve a bearer token to an account
// - Update/Delete: mutate or remove an authenticated account
// - Logout: revoke the active session token
type AccountService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewAccountService constructs an AccountService using repositories and
// server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return common.ErrInvalidUsername
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return common.ErrInvalidPassword
	}
	return nil
}

// Register validates the username and password policies before touching
// the store, then creates the account with an empty refresh token. A
// duplicate username yields common.ErrorAlreadyExists and never creates
// a record.
func (s *AccountService) Register(ctx context.Context, name, username, bio string, age int, password string) (*models.Account, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Accounts(s.db)
	created, err := repo.Create(ctx, &models.Account{
		Name:         name,
		Username:     username,
		Bio:          bio,
		Age:          age,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}
	return created, nil
}

// Login verifies the credentials and rotates the account's refresh token.
// The new token overwrites any previous one, so at most one session is
// active per account. Returns the updated account together with the
// minted token pair.
func (s *AccountService) Login(ctx context.Context, username, password string) (*models.Account, *TokenPair, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, common.ErrorInternal
	}

	if err := auth.CheckPassword(password, account.PasswordHash); err != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(account.ID)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	updated, err := repo.SetRefreshToken(ctx, account.ID, pair.RefreshToken)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}
	return updated, pair, nil
}

// Authenticate resolves a presented bearer token to the account whose
// stored refresh token equals it. An empty token yields
// common.ErrorUnauthorized. The signature is checked before the store
// is consulted: only service-minted tokens can be stored, so a forged,
// malformed, or expired bearer yields the same common.ErrorNotFound a
// lookup miss would.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	accountID, err := auth.ParseAccountID(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByRefreshToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if account.ID != accountID {
		return nil, common.ErrorNotFound
	}
	return account, nil
}

// Update authenticates via the bearer token and applies the non-nil
// profile fields. When both Password and NewPassword are supplied, the
// current password is verified first and the new one replaces the stored
// hash; a mismatch leaves the record untouched. The authentication and
// the write run in one transaction so a concurrent logout cannot slip
// between them.
func (s *AccountService) Update(ctx context.Context, token string, params UpdateParams) (*models.Account, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	if params.Username != nil {
		if err := validateUsername(*params.Username); err != nil {
			return nil, err
		}
	}

	patch := accounts.Patch{
		Name:     params.Name,
		Username: params.Username,
		Bio:      params.Bio,
		Age:      params.Age,
	}

	var updated *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		account, err := repo.GetByRefreshToken(ctx, token)
		if err != nil {
			return err
		}

		if params.Password != "" && params.NewPassword != "" {
			if err := auth.CheckPassword(params.Password, account.PasswordHash); err != nil {
				return common.ErrorUnauthorized
			}
			if err := validatePassword(params.NewPassword); err != nil {
				return err
			}
			hash, err := auth.HashPassword(params.NewPassword)
			if err != nil {
				return common.ErrorInternal
			}
			patch.PasswordHash = &hash
		}

		updated, err = repo.Update(ctx, account.ID, patch)
		return err
	})
	if err != nil {
		return nil, mapTxError(err)
	}
	return updated, nil
}

// Delete authenticates via the bearer token, verifies the password, and
// permanently removes the account. Returns the deleted record.
func (s *AccountService) Delete(ctx context.Context, token, password string) (*models.Account, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	var deleted *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		account, err := repo.GetByRefreshToken(ctx, token)
		if err != nil {
			return err
		}
		if err := auth.CheckPassword(password, account.PasswordHash); err != nil {
			return common.ErrorUnauthorized
		}

		deleted, err = repo.Delete(ctx, account.ID)
		return err
	})
	if err != nil {
		return nil, mapTxError(err)
	}
	return deleted, nil
}

// Logout revokes the session identified by the refresh token: the stored
// token is cleared to the empty string so it can never authenticate
// again. Returns the account as it was before the clear. An unknown
// token yields common.ErrorNotFound.
func (s *AccountService) Logout(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	var account *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		found, err := repo.GetByRefreshToken(ctx, token)
		if err != nil {
			return err
		}
		if _, err := repo.SetRefreshToken(ctx, found.ID, ""); err != nil {
			return err
		}
		account = found
		return nil
	})
	if err != nil {
		return nil, mapTxError(err)
	}
	return account, nil
}

// mapTxError keeps the sentinel taxonomy intact across the transaction
// boundary and collapses anything unexpected into ErrorInternal.
func mapTxError(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrorNotFound
	case errors.Is(err, common.ErrorUnauthorized):
		return common.ErrorUnauthorized
	case errors.Is(err, common.ErrInvalidUsername):
		return common.ErrInvalidUsername
	case errors.Is(err, common.ErrInvalidPassword):
		return common.ErrInvalidPassword
	default:
		return common.ErrorInternal
	}
}

func (s *AccountService) generateTokenPair(accountID string) (*TokenPair, error) {
	session, err := auth.GenerateToken(accountID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateToken(accountID, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	return &TokenPair{SessionToken: session, RefreshToken: refresh}, nil
}
