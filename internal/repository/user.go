package repository

import (
	"context"
	"time"

	"paragraph-titler/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	// Create inserts user inside a transaction after checking that neither the
	// username nor the email is taken. It returns ErrDuplicateUser on conflict.
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetActiveByUsername(ctx context.Context, username string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}
