package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"taskboard/internal/api/middleware"
	"taskboard/internal/config"
	"taskboard/internal/platform/postgres"
	taskredis "taskboard/internal/platform/redis"
	"taskboard/internal/realtime"
	"taskboard/internal/service"
	"taskboard/internal/service/auth"
)

// application holds the wired dependency graph for the server process.
type application struct {
	config *config.Config
	logger *slog.Logger

	db  *sql.DB
	rdb *goredis.Client

	jwtService       auth.JWTService
	authMiddleware   *middleware.AuthMiddleware
	userService      service.UserService
	taskService      service.TaskService
	analyticsService service.AnalyticsService

	projectStore *postgres.ProjectStore
	tagStore     *postgres.TagStore
	commentStore *postgres.CommentStore

	registry *realtime.Registry
	notifier *realtime.Notifier
}

// newApplication wires every component from configuration. The database and
// Redis connections are assumed open; closing them stays with the caller.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB, rdb *goredis.Client) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	clock := clockwork.NewRealClock()

	registry := realtime.NewRegistry(log)
	notifier := realtime.NewNotifier(registry, log)

	userStore := postgres.NewUserStore(db, log)
	projectStore := postgres.NewProjectStore(db, log)
	taskStore := postgres.NewTaskStore(db, log)
	tagStore := postgres.NewTagStore(db, log)
	commentStore := postgres.NewCommentStore(db, log)
	analyticsStore := postgres.NewAnalyticsStore(db, log)

	dashboardCache := taskredis.NewDashboardCache(rdb)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	verifier := auth.NewBcryptVerifier()

	return &application{
		config:         cfg,
		logger:         log,
		db:             db,
		rdb:            rdb,
		jwtService:     jwtService,
		authMiddleware: middleware.NewAuthMiddleware(jwtService),
		userService:    service.NewUserService(userStore, hasher, verifier, log),
		taskService: service.NewTaskService(
			taskStore, projectStore, tagStore, notifier, clock, log),
		analyticsService: service.NewAnalyticsService(
			analyticsStore, dashboardCache, clock, log),
		projectStore: projectStore,
		tagStore:     tagStore,
		commentStore: commentStore,
		registry:     registry,
		notifier:     notifier,
	}, nil
}

// cleanup closes everything the application owns, in reverse wiring order.
func (app *application) cleanup() {
	app.registry.CloseAll()

	if err := app.rdb.Close(); err != nil {
		app.logger.Warn("failed to close redis client", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn("failed to close database", "error", err)
	}
}
