package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-service/internal/api/http/handlers"
	"github.com/spec-kit/movie-service/internal/auth"
	"github.com/spec-kit/movie-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Users           *handlers.UsersHandler
	Movies          *handlers.MoviesHandler
	AuthMiddleware  *auth.AuthMiddleware
	Metrics         *observability.Metrics
	MovieWriteRoles []string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	guard := cfg.AuthMiddleware.Handle

	users := app.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Get("/verify/:token", guard, cfg.Users.Verify)
	users.Get("/paginate", guard, cfg.Users.Paginate)
	users.Get("/", guard, cfg.Users.List)

	movies := app.Group("/movies", guard)
	movies.Get("/", cfg.Movies.List)
	movies.Get("/:id", cfg.Movies.Get)

	canWrite := auth.RequireRole(cfg.MovieWriteRoles...)
	movies.Post("/", canWrite, cfg.Movies.Create)
	movies.Put("/:id", canWrite, cfg.Movies.Update)
	movies.Delete("/:id", canWrite, cfg.Movies.Delete)
}
