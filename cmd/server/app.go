package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/uptrace/bun"
)

// application holds the shared dependencies so they can be wired once
// and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *bun.DB

	userStore store.UserStore
	taskStore store.TaskStore

	hasher     auth.PasswordHasher
	jwtService auth.JWTService
	guard      *auth.Guard

	userService service.UserService
	taskService service.TaskService
}

// newApplication wires stores, auth components and services on top of an
// established database handle.
func newApplication(cfg *config.Config, logger *slog.Logger, db *bun.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}
	app.hasher = hasher

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime", app.jwtService.TokenLifetime().String())

	app.userStore = postgres.NewUserStore(db, logger)
	app.taskStore = postgres.NewTaskStore(db, logger)

	app.guard = auth.NewGuard(
		app.jwtService,
		auth.NewIdentityResolver(app.userStore, logger),
		logger,
	)

	app.userService = service.NewUserService(app.userStore, app.hasher, app.jwtService, logger)
	app.taskService = service.NewTaskService(app.taskStore, logger)

	return app, nil
}

// setupRouter builds the HTTP handler tree.
func (app *application) setupRouter() http.Handler {
	dev := app.config.Server.IsDevelopment()

	return api.NewRouter(api.RouterDeps{
		AuthHandler: api.NewAuthHandler(
			app.userService,
			app.jwtService.TokenLifetime(),
			dev,
			app.logger,
		),
		TaskHandler:    api.NewTaskHandler(app.taskService, dev, app.logger),
		AuthMiddleware: middleware.NewAuthMiddleware(app.guard, dev),
		Logger:         app.logger,
		RequestLogging: dev,
	})
}

// Run serves HTTP until the context is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
		return
	}
	app.logger.Info("database connection closed")
}
