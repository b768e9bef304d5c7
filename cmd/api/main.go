package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/movie-service/internal/api/http"
	"github.com/spec-kit/movie-service/internal/api/http/handlers"
	"github.com/spec-kit/movie-service/internal/auth"
	"github.com/spec-kit/movie-service/internal/config"
	"github.com/spec-kit/movie-service/internal/events"
	"github.com/spec-kit/movie-service/internal/observability"
	"github.com/spec-kit/movie-service/internal/persistence"
	"github.com/spec-kit/movie-service/internal/repository"
	"github.com/spec-kit/movie-service/internal/service"
	"github.com/spec-kit/movie-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.ApplySchema {
		if err := persistence.ApplySchema(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to apply schema", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	movieRepo := repository.NewMovieRepository(pool)
	movieCache := repository.NewRedisMovieCache(redis.Client, redis.MovieTTL())

	dispatcher := events.NewInMemoryDispatcher(logger)
	publisher := newEventPublisher(cfg.Events, logger)
	defer publisher.Close() //nolint:errcheck
	worker.StartAuditWorker(service.NewAuditService(dispatcher, publisher, logger))

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:     userRepo,
		TokenManager: tokens,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	userService := service.NewUserService(userRepo)
	movieService := service.NewMovieService(service.MovieDependencies{
		MovieRepo:  movieRepo,
		Cache:      movieCache,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, auth.GuardOptions{
		LookupTimeout:       cfg.Auth.IdentityLookupTimeout(),
		RequireBearerScheme: cfg.Auth.RequireBearerScheme,
		Logger:              logger,
		Metrics:             metrics,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
			handlers.DependencyCheck{Name: "postgres", Pinger: pg},
			handlers.DependencyCheck{Name: "redis", Pinger: redis},
		),
		Users:           handlers.NewUsersHandler(authService, userService),
		Movies:          handlers.NewMoviesHandler(movieService),
		AuthMiddleware:  authMiddleware,
		Metrics:         metrics,
		MovieWriteRoles: cfg.Auth.MovieWriteRoles,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func newEventPublisher(cfg config.EventsConfig, logger *zap.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no kafka brokers configured, events stay in process")
		return events.NewNoopPublisher()
	}
	logger.Info("forwarding events to kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
