package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/movie-service/internal/domain"
)

// MovieRepository encapsulates movie persistence.
type MovieRepository interface {
	Create(ctx context.Context, movie *domain.Movie) error
	GetByID(ctx context.Context, id int64) (*domain.Movie, error)
	List(ctx context.Context, limit, offset int) ([]domain.Movie, error)
	Update(ctx context.Context, movie *domain.Movie) error
	Delete(ctx context.Context, id int64) error
}

type movieRepository struct {
	db DBTX
}

// NewMovieRepository instantiates repository.
func NewMovieRepository(db DBTX) MovieRepository {
	return &movieRepository{db: db}
}

const movieColumns = `id, title, genres, year, created_at, updated_at`

func (r *movieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	const query = `
        INSERT INTO movies (title, genres, year)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Genres,
		movie.Year,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
}

func (r *movieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	const query = `SELECT ` + movieColumns + ` FROM movies WHERE id=$1`
	return scanMovie(r.db.QueryRow(ctx, query, id))
}

func (r *movieRepository) List(ctx context.Context, limit, offset int) ([]domain.Movie, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	} else {
		rows, err = r.db.Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	}
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}
	return movies, rows.Err()
}

func (r *movieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	const query = `
        UPDATE movies SET title=$1, genres=$2, year=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Genres,
		movie.Year,
		movie.ID,
	).Scan(&movie.CreatedAt, &movie.UpdatedAt)
}

func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var movie domain.Movie
	if err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genres,
		&movie.Year,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &movie, nil
}
