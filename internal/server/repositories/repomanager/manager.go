package repomanager

import (
	"context"
	"database/sql"

	"github.com/devesh1231/user-account-service/internal/dbx"
	"github.com/devesh1231/user-account-service/internal/server/repositories/accounts"
)

// RepositoryManager vends repositories bound to a DBTX (a *sql.DB for
// plain access or a *sql.Tx inside dbx.WithTx) and runs schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
