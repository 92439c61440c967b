package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/devesh1231/user-account-service/internal/common"
	"github.com/devesh1231/user-account-service/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

var accountCols = []string{"id", "name", "username", "bio", "age", "password_hash", "refresh_token", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func aliceRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(accountCols).
		AddRow("u-1", "Alice", "alice01", "hi", 30, "$2a$14$hash", "", now, now)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+accounts\s*\(name,\s*username,\s*bio,\s*age,\s*password_hash,\s*refresh_token\)`

	mock.ExpectQuery(q).
		WithArgs("Alice", "alice01", "hi", 30, "$2a$14$hash", "").
		WillReturnRows(aliceRow())

	a := &models.Account{Name: "Alice", Username: "alice01", Bio: "hi", Age: 30, PasswordHash: "$2a$14$hash"}
	got, err := repo.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" || got.Username != "alice01" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+accounts`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_idx"})

	_, err := repo.Create(context.Background(), &models.Account{Username: "alice01"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+accounts`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Account{Username: "alice01"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+accounts\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("alice01").
		WillReturnRows(aliceRow())

	got, err := repo.GetByUsername(context.Background(), "alice01")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != "u-1" || got.Name != "Alice" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+accounts\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("ghost1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByRefreshToken_ExcludesClearedTokens(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `SELECT\s+.*\s+FROM\s+accounts\s+WHERE\s+refresh_token\s*=\s*\$1\s+AND\s+refresh_token\s*<>\s*''`

	mock.ExpectQuery(q).
		WithArgs("tok-abc").
		WillReturnRows(aliceRow())

	got, err := repo.GetByRefreshToken(context.Background(), "tok-abc")
	if err != nil {
		t.Fatalf("GetByRefreshToken error: %v", err)
	}
	if got.ID != "u-1" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestGetByRefreshToken_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+accounts\s+WHERE\s+refresh_token`).
		WithArgs("stale").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByRefreshToken(context.Background(), "stale")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSetRefreshToken_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(accountCols).
		AddRow("u-1", "Alice", "alice01", "hi", 30, "$2a$14$hash", "tok-new", now, now)

	mock.ExpectQuery(`UPDATE\s+accounts\s+SET\s+refresh_token\s*=\s*\$2`).
		WithArgs("u-1", "tok-new").
		WillReturnRows(rows)

	got, err := repo.SetRefreshToken(context.Background(), "u-1", "tok-new")
	if err != nil {
		t.Fatalf("SetRefreshToken error: %v", err)
	}
	if got.RefreshToken != "tok-new" {
		t.Fatalf("token not rotated: %+v", got)
	}
}

func TestSetRefreshToken_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+accounts\s+SET\s+refresh_token`).
		WithArgs("u-404", "tok").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.SetRefreshToken(context.Background(), "u-404", "tok")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(accountCols).
		AddRow("u-1", "Alice", "alice01", "new bio", 30, "$2a$14$hash", "", now, now)

	bio := "new bio"
	mock.ExpectQuery(`UPDATE\s+accounts\s+SET\s+name\s*=\s*COALESCE`).
		WithArgs("u-1", nil, nil, "new bio", nil, nil).
		WillReturnRows(rows)

	got, err := repo.Update(context.Background(), "u-1", Patch{Bio: &bio})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Bio != "new bio" {
		t.Fatalf("bio not updated: %+v", got)
	}
}

func TestUpdate_DuplicateUsername(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+accounts\s+SET\s+name\s*=\s*COALESCE`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	username := "takenname"
	_, err := repo.Update(context.Background(), "u-1", Patch{Username: &username})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`DELETE\s+FROM\s+accounts\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnRows(aliceRow())

	got, err := repo.Delete(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got.ID != "u-1" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`DELETE\s+FROM\s+accounts`).
		WithArgs("u-404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), "u-404")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
