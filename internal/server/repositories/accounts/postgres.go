// Package accounts provides a PostgreSQL-backed repository for account
// records, including the refresh-token rotation used by the session flow.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devesh1231/user-account-service/internal/common"
	"github.com/devesh1231/user-account-service/internal/dbx"
	"github.com/devesh1231/user-account-service/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const accountColumns = `id, name, username, bio, age, password_hash, refresh_token, created_at, updated_at`

// PostgresRepository implements the Repository contract over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.Name, &a.Username, &a.Bio, &a.Age,
		&a.PasswordHash, &a.RefreshToken, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create inserts a new account. The id and timestamps are generated by
// the database.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (name, username, bio, age, password_hash, refresh_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + accountColumns

	row := r.db.QueryRowContext(ctx, query,
		account.Name, account.Username, account.Bio, account.Age,
		account.PasswordHash, account.RefreshToken)

	created, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// GetByUsername returns the account with the given username.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

// GetByRefreshToken resolves a presented bearer token. The predicate
// excludes empty stored tokens so a logged-out account can never match.
func (r *PostgresRepository) GetByRefreshToken(ctx context.Context, token string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE refresh_token = $1 AND refresh_token <> ''`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

// SetRefreshToken overwrites the stored refresh token in one UPDATE, so
// rotation is atomic at the row level and the last writer wins.
func (r *PostgresRepository) SetRefreshToken(ctx context.Context, id string, token string) (*models.Account, error) {
	query := `
		UPDATE accounts SET refresh_token = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

// Update applies the non-nil patch fields. COALESCE keeps the stored
// value for fields the caller did not supply.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch Patch) (*models.Account, error) {
	query := `
		UPDATE accounts SET
			name = COALESCE($2, name),
			username = COALESCE($3, username),
			bio = COALESCE($4, bio),
			age = COALESCE($5, age),
			password_hash = COALESCE($6, password_hash),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + accountColumns

	row := r.db.QueryRowContext(ctx, query, id,
		patch.Name, patch.Username, patch.Bio, patch.Age, patch.PasswordHash)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

// Delete removes the account and returns the deleted row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (*models.Account, error) {
	query := `DELETE FROM accounts WHERE id = $1 RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}
