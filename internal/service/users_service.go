package service

import (
	"context"

	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/repository"
)

// UserService exposes read access to accounts.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns every user ordered by id.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx, 0, 0)
}

// Paginate returns one page of users.
func (s *UserService) Paginate(ctx context.Context, page Page) ([]domain.User, error) {
	page = NormalizePage(page.Number, page.Limit)
	return s.users.List(ctx, page.Limit, page.Offset())
}
