package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"paragraph-titler/internal/domain"
	"paragraph-titler/internal/repository"
)

type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.User
	failOn error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[int64]domain.User{}}
}

func (m *memoryUsers) Init(context.Context) error { return nil }

func (m *memoryUsers) Create(_ context.Context, user *domain.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != nil {
		return 0, m.failOn
	}
	for _, u := range m.byID {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, repository.ErrDuplicateUser
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.byID[user.ID] = *user
	return user.ID, nil
}

func (m *memoryUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memoryUsers) GetActiveByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username && u.IsActive {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUsers) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastLogin = &at
	m.byID[id] = u
	return nil
}

func (m *memoryUsers) setActive(id int64, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.byID[id]
	u.IsActive = active
	m.byID[id] = u
}

type savedRow struct {
	userID int64
	result domain.TitleResult
}

type memoryResults struct {
	mu      sync.Mutex
	nextID  int64
	rows    []savedRow
	saveErr error
}

func (m *memoryResults) Init(context.Context) error { return nil }

func (m *memoryResults) Save(_ context.Context, userID int64, result *domain.TitleResult) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	m.nextID++
	id := m.nextID
	created := time.Unix(1700000000+id, 0).UTC()
	result.ID = &id
	result.CreatedAt = &created
	m.rows = append(m.rows, savedRow{userID: userID, result: *result})
	return id, nil
}

func (m *memoryResults) owned(userID int64) []domain.TitleResult {
	var out []domain.TitleResult
	for _, r := range m.rows {
		if r.userID == userID {
			out = append(out, r.result)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].ID > *out[j].ID })
	return out
}

func (m *memoryResults) List(_ context.Context, userID int64, limit, offset int) ([]domain.TitleResult, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.owned(userID)
	if offset >= len(all) {
		return []domain.TitleResult{}, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (m *memoryResults) ListAll(_ context.Context, userID int64) ([]domain.TitleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owned(userID), nil
}

func (m *memoryResults) Delete(_ context.Context, resultID, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if *r.result.ID == resultID && r.userID == userID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// scriptedGenerator returns titles keyed by paragraph and fails on paragraphs listed in failOn.
type scriptedGenerator struct {
	titles map[string]string
	failOn map[string]error
	calls  []string
}

func (g *scriptedGenerator) Generate(_ context.Context, paragraph string, _, _ int) (*domain.TitleResult, error) {
	g.calls = append(g.calls, paragraph)
	if err, ok := g.failOn[paragraph]; ok {
		return nil, err
	}
	title, ok := g.titles[paragraph]
	if !ok {
		return nil, errors.New("unscripted paragraph")
	}
	return &domain.TitleResult{
		Title:            title,
		Paragraph:        paragraph,
		ProcessingTimeMs: 1.5,
		CharacterCount:   len(paragraph),
		WordCount:        3,
	}, nil
}
