package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/movie-service/internal/api/dto"
	"github.com/spec-kit/movie-service/internal/service"
	apperrors "github.com/spec-kit/movie-service/pkg/util/errorutil"
)

// MoviesHandler manages catalogue endpoints.
type MoviesHandler struct {
	service *service.MovieService
}

// NewMoviesHandler constructs handler.
func NewMoviesHandler(movieService *service.MovieService) *MoviesHandler {
	return &MoviesHandler{service: movieService}
}

// List GET /movies. Pagination applies only when both page and limit are set.
func (h *MoviesHandler) List(c *fiber.Ctx) error {
	var page *service.Page
	if c.Query("page") != "" && c.Query("limit") != "" {
		p := service.NormalizePage(c.QueryInt("page"), c.QueryInt("limit"))
		page = &p
	}
	movies, err := h.service.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": movies})
}

// Get GET /movies/:id.
func (h *MoviesHandler) Get(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}
	movie, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return movieError(err, id)
	}
	return c.JSON(fiber.Map{"data": movie})
}

// Create POST /movies.
func (h *MoviesHandler) Create(c *fiber.Ctx) error {
	req, err := parseMovieRequest(c)
	if err != nil {
		return err
	}
	movie, err := h.service.Create(c.UserContext(), service.MovieInput{Title: req.Title, Genres: req.Genres, Year: req.Year})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Success("Movie successfully added!", movie))
}

// Update PUT /movies/:id.
func (h *MoviesHandler) Update(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}
	req, err := parseMovieRequest(c)
	if err != nil {
		return err
	}
	movie, err := h.service.Update(c.UserContext(), id, service.MovieInput{Title: req.Title, Genres: req.Genres, Year: req.Year})
	if err != nil {
		return movieError(err, id)
	}
	return c.JSON(dto.Success("Movie "+movie.Title+" successfully updated", nil))
}

// Delete DELETE /movies/:id.
func (h *MoviesHandler) Delete(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return movieError(err, id)
	}
	return c.JSON(dto.Success("Movie successfully deleted!", nil))
}

func parseMovieRequest(c *fiber.Ctx) (*dto.MovieRequest, error) {
	var req dto.MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.FromValidation(err)
	}
	return &req, nil
}

func movieID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid movie id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func movieError(err error, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("movie", map[string]any{"id": id})
	}
	return err
}
