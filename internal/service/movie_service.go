package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-service/internal/auth"
	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/events"
	"github.com/spec-kit/movie-service/internal/repository"
)

// MovieService coordinates the movie catalogue.
type MovieService struct {
	movies     repository.MovieRepository
	cache      repository.MovieCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// MovieDependencies bundles collaborators for the movie service.
type MovieDependencies struct {
	MovieRepo  repository.MovieRepository
	Cache      repository.MovieCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// MovieInput describes the writable movie fields.
type MovieInput struct {
	Title  string
	Genres string
	Year   int
}

// NewMovieService constructs the service.
func NewMovieService(deps MovieDependencies) *MovieService {
	s := &MovieService{
		movies:     deps.MovieRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
	if s.cache == nil {
		s.cache = repository.NewNoopMovieCache()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Create stores a new movie.
func (s *MovieService) Create(ctx context.Context, input MovieInput) (*domain.Movie, error) {
	movie := &domain.Movie{
		Title:  strings.TrimSpace(input.Title),
		Genres: strings.TrimSpace(input.Genres),
		Year:   input.Year,
	}
	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventMovieCreated, movie)
	return movie, nil
}

// Get returns one movie, reading through the cache. Missing movies surface
// as pgx.ErrNoRows.
func (s *MovieService) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	cached, err := s.cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, repository.ErrCacheMiss) {
		s.logger.Warn("movie cache read failed", zap.Int64("movie_id", id), zap.Error(err))
	}

	movie, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, movie); err != nil {
		s.logger.Warn("movie cache write failed", zap.Int64("movie_id", id), zap.Error(err))
	}
	return movie, nil
}

// List returns every movie, or a single page when page is set.
func (s *MovieService) List(ctx context.Context, page *Page) ([]domain.Movie, error) {
	if page == nil {
		return s.movies.List(ctx, 0, 0)
	}
	p := NormalizePage(page.Number, page.Limit)
	return s.movies.List(ctx, p.Limit, p.Offset())
}

// Update replaces the writable fields of an existing movie.
func (s *MovieService) Update(ctx context.Context, id int64, input MovieInput) (*domain.Movie, error) {
	movie := &domain.Movie{
		ID:     id,
		Title:  strings.TrimSpace(input.Title),
		Genres: strings.TrimSpace(input.Genres),
		Year:   input.Year,
	}
	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	s.publish(ctx, events.EventMovieUpdated, movie)
	return movie, nil
}

// Delete removes a movie.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.publish(ctx, events.EventMovieDeleted, &domain.Movie{ID: id})
	return nil
}

func (s *MovieService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("movie cache invalidation failed", zap.Int64("movie_id", id), zap.Error(err))
	}
}

func (s *MovieService) publish(ctx context.Context, eventType events.EventType, movie *domain.Movie) {
	if s.dispatcher == nil {
		return
	}
	var actor events.Actor
	if user, ok := auth.UserFromContext(ctx); ok {
		actor = events.ActorFromUserID(user.ID)
	}
	event := events.NewEvent(eventType, "movie:"+strconv.FormatInt(movie.ID, 10), actor, events.MoviePayload{
		MovieID: movie.ID,
		Title:   movie.Title,
		Genres:  movie.Genres,
		Year:    movie.Year,
	})
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}
