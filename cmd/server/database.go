package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/uptrace/bun"
)

// setupAppDatabase establishes the pooled PostgreSQL connection.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*bun.DB, error) {
	logger.Info("connecting to database", "url", maskDatabaseURL(cfg.Database.URL))

	db, err := postgres.Open(ctx, cfg.Database, logger.With("component", "database"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// runMigrations opens the database, applies the goose command and closes it again.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database connection", "error", err)
		}
	}()

	logger.Info("executing migrations", "command", command)
	return postgres.Migrate(ctx, db.DB, command, logger.With("component", "migrations"))
}

// maskDatabaseURL hides the password component of a connection string for logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	return parsedURL.Redacted()
}
