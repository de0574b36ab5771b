package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"paragraph-titler/internal/domain"
	"paragraph-titler/internal/repository"
)

const createUsersTableSQLite = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_name TEXT NULL,
	last_name TEXT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at DATETIME NOT NULL,
	last_login DATETIME NULL
);
`

const createUsersTablePostgres = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username VARCHAR(50) NOT NULL UNIQUE,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_name VARCHAR(50) NULL,
	last_name VARCHAR(50) NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	last_login TIMESTAMPTZ NULL
);
`

const userColumns = `id, username, email, password_hash, first_name, last_name, is_active, created_at, last_login`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	ddl := createUsersTableSQLite
	if isPostgres(r.db) {
		ddl = createUsersTablePostgres
	}
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	var taken int
	if err := tx.GetContext(ctx, &taken, tx.Rebind(`
SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`),
		user.Username,
		user.Email,
	); err != nil {
		return 0, fmt.Errorf("check existing user: %w", err)
	}
	if taken > 0 {
		return 0, repository.ErrDuplicateUser
	}

	var id int64
	err = tx.QueryRowxContext(ctx, tx.Rebind(`
INSERT INTO users (username, email, password_hash, first_name, last_name, is_active, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`),
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.IsActive,
		user.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicateUser
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(`
SELECT `+userColumns+`
FROM users
WHERE id = ?`), id)
	return scanUser(&user, err)
}

func (r *UserRepository) GetActiveByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(`
SELECT `+userColumns+`
FROM users
WHERE username = ? AND is_active = TRUE`), username)
	return scanUser(&user, err)
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE users SET last_login = ? WHERE id = ?`), at, id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("last login rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(user *domain.User, err error) (*domain.User, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}
