package repository

import (
	"context"

	"paragraph-titler/internal/domain"
)

// ResultRepository persists generated titles per owning user.
type ResultRepository interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, userID int64, result *domain.TitleResult) (int64, error)
	// List returns one page of the user's results, newest first, plus the
	// total number of results the user owns.
	List(ctx context.Context, userID int64, limit, offset int) ([]domain.TitleResult, int, error)
	ListAll(ctx context.Context, userID int64) ([]domain.TitleResult, error)
	Delete(ctx context.Context, resultID, userID int64) (bool, error)
}
