package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"paragraph-titler/internal/domain"
	"paragraph-titler/internal/repository"
)

const createResultsTableSQLite = `
CREATE TABLE IF NOT EXISTS saved_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	paragraph TEXT NOT NULL,
	generated_title TEXT NOT NULL,
	status TEXT NOT NULL,
	confidence TEXT NOT NULL,
	processing_time_ms REAL NOT NULL DEFAULT 0,
	character_count INTEGER NOT NULL DEFAULT 0,
	word_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_saved_results_user_created ON saved_results(user_id, created_at);
`

const createResultsTablePostgres = `
CREATE TABLE IF NOT EXISTS saved_results (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	paragraph TEXT NOT NULL,
	generated_title TEXT NOT NULL,
	status VARCHAR(20) NOT NULL,
	confidence VARCHAR(20) NOT NULL,
	processing_time_ms DOUBLE PRECISION NOT NULL DEFAULT 0,
	character_count INTEGER NOT NULL DEFAULT 0,
	word_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saved_results_user_created ON saved_results(user_id, created_at);
`

const resultColumns = `id, paragraph, generated_title, status, confidence, processing_time_ms, character_count, word_count, created_at`

type ResultRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewResultRepository(db *sqlx.DB) repository.ResultRepository {
	return &ResultRepository{db: db, now: time.Now}
}

func (r *ResultRepository) Init(ctx context.Context) error {
	ddl := createResultsTableSQLite
	if isPostgres(r.db) {
		ddl = createResultsTablePostgres
	}
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create saved_results table: %w", err)
	}
	return nil
}

func (r *ResultRepository) Save(ctx context.Context, userID int64, result *domain.TitleResult) (int64, error) {
	createdAt := r.now().UTC()

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO saved_results (user_id, paragraph, generated_title, status, confidence, processing_time_ms, character_count, word_count, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`),
		userID,
		result.Paragraph,
		result.Title,
		string(result.Status),
		string(result.Confidence),
		result.ProcessingTimeMs,
		result.CharacterCount,
		result.WordCount,
		createdAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}

	result.ID = &id
	result.CreatedAt = &createdAt
	return id, nil
}

func (r *ResultRepository) List(ctx context.Context, userID int64, limit, offset int) ([]domain.TitleResult, int, error) {
	results := []domain.TitleResult{}
	if err := r.db.SelectContext(ctx, &results, r.db.Rebind(`
SELECT `+resultColumns+`
FROM saved_results
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`),
		userID, limit, offset,
	); err != nil {
		return nil, 0, fmt.Errorf("query results: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM saved_results WHERE user_id = ?`), userID); err != nil {
		return nil, 0, fmt.Errorf("count results: %w", err)
	}

	return results, total, nil
}

func (r *ResultRepository) ListAll(ctx context.Context, userID int64) ([]domain.TitleResult, error) {
	results := []domain.TitleResult{}
	if err := r.db.SelectContext(ctx, &results, r.db.Rebind(`
SELECT `+resultColumns+`
FROM saved_results
WHERE user_id = ?
ORDER BY created_at DESC, id DESC`), userID); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return results, nil
}

func (r *ResultRepository) Delete(ctx context.Context, resultID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM saved_results WHERE id = ? AND user_id = ?`), resultID, userID)
	if err != nil {
		return false, fmt.Errorf("delete result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete rows affected: %w", err)
	}
	return n > 0, nil
}
