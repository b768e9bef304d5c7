package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-service/internal/domain"
)

var movieRowColumns = []string{"id", "title", "genres", "year", "created_at", "updated_at"}

func TestMovieRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewMovieRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO movies (title, genres, year)`)).
		WithArgs("Reckless", "Comedy", 2001).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	movie := &domain.Movie{Title: "Reckless", Genres: "Comedy", Year: 2001}
	require.NoError(t, repo.Create(context.Background(), movie))
	assert.Equal(t, int64(1), movie.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewMovieRepository(mock)
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM movies WHERE id=$1`)).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(movieRowColumns).AddRow(int64(1), "Reckless", "Comedy", 2001, now, now))

		movie, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Reckless", movie.Title)
		assert.Equal(t, 2001, movie.Year)
	})

	t.Run("missing", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewMovieRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM movies WHERE id=$1`)).
			WithArgs(int64(2)).
			WillReturnRows(pgxmock.NewRows(movieRowColumns))

		_, err := repo.GetByID(ctx, 2)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})
}

func TestMovieRepository_List(t *testing.T) {
	mock := newMockPool(t)
	repo := NewMovieRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM movies ORDER BY id LIMIT $1 OFFSET $2`)).
		WithArgs(5, 5).
		WillReturnRows(pgxmock.NewRows(movieRowColumns).AddRow(int64(6), "Heat", "Crime", 1995, now, now))

	movies, err := repo.List(context.Background(), 5, 5)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Heat", movies[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewMovieRepository(mock)
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE movies SET title=$1, genres=$2, year=$3`)).
			WithArgs("Heat", "Crime", 1995, int64(6)).
			WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		movie := &domain.Movie{ID: 6, Title: "Heat", Genres: "Crime", Year: 1995}
		require.NoError(t, repo.Update(ctx, movie))
		assert.Equal(t, now, movie.UpdatedAt)
	})

	t.Run("missing", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewMovieRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE movies`)).
			WithArgs("Heat", "Crime", 1995, int64(7)).
			WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}))

		err := repo.Update(ctx, &domain.Movie{ID: 7, Title: "Heat", Genres: "Crime", Year: 1995})
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})
}

func TestMovieRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewMovieRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movies WHERE id=$1`)).
			WithArgs(int64(6)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Delete(ctx, 6))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewMovieRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movies WHERE id=$1`)).
			WithArgs(int64(7)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.Delete(ctx, 7), pgx.ErrNoRows)
	})
}
