// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/repository"
)

// Users is an in-memory repository.UserRepository.
type Users struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.User
	// Err, when set, is returned by every call.
	Err error
}

var _ repository.UserRepository = (*Users)(nil)

// NewUsers returns an empty store.
func NewUsers() *Users {
	return &Users{byID: make(map[int64]domain.User)}
}

func (u *Users) Create(_ context.Context, user *domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	for _, existing := range u.byID {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	u.nextID++
	user.ID = u.nextID
	user.CreatedAt = time.Now().UTC()
	u.byID[user.ID] = *user
	return nil
}

func (u *Users) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	user, ok := u.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (u *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	for _, user := range u.byID {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (u *Users) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	all := make([]domain.User, 0, len(u.byID))
	for _, user := range u.byID {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return window(all, limit, offset), nil
}

// Delete removes a user.
func (u *Users) Delete(id int64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.byID, id)
}

// Movies is an in-memory repository.MovieRepository.
type Movies struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.Movie
	// Reads counts GetByID calls.
	Reads int
	Err   error
}

var _ repository.MovieRepository = (*Movies)(nil)

// NewMovies returns an empty store.
func NewMovies() *Movies {
	return &Movies{byID: make(map[int64]domain.Movie)}
}

func (m *Movies) Create(_ context.Context, movie *domain.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	now := time.Now().UTC()
	movie.ID = m.nextID
	movie.CreatedAt, movie.UpdatedAt = now, now
	m.byID[movie.ID] = *movie
	return nil
}

func (m *Movies) GetByID(_ context.Context, id int64) (*domain.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.Err != nil {
		return nil, m.Err
	}
	movie, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &movie, nil
}

func (m *Movies) List(_ context.Context, limit, offset int) ([]domain.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	all := make([]domain.Movie, 0, len(m.byID))
	for _, movie := range m.byID {
		all = append(all, movie)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return window(all, limit, offset), nil
}

func (m *Movies) Update(_ context.Context, movie *domain.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	existing, ok := m.byID[movie.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	movie.CreatedAt = existing.CreatedAt
	movie.UpdatedAt = time.Now().UTC()
	m.byID[movie.ID] = *movie
	return nil
}

func (m *Movies) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func window[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		return items
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
