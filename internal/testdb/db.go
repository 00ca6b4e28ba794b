package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Environment variables consulted for a PostgreSQL test server, in order.
const (
	EnvTestDatabaseURL = "TASKS_TEST_DB_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

// Schema mirrors the PostgreSQL migrations in SQLite syntax.
const Schema = `
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	CONSTRAINT users_email_key UNIQUE (email)
);

CREATE TABLE tasks (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	title VARCHAR(255) NOT NULL,
	description TEXT,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	CONSTRAINT tasks_status_check CHECK (status IN ('pending', 'in-progress', 'done'))
);

CREATE INDEX idx_tasks_user_id_created_at ON tasks (user_id, created_at DESC);
CREATE INDEX idx_tasks_user_id_status ON tasks (user_id, status);
`

const pingTimeout = 5 * time.Second

// SQLite returns a bun.DB over a private in-memory SQLite database with the
// users and tasks tables created. The handle is closed when the test ends.
func SQLite(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Each connection to ":memory:" is its own database.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

// DatabaseURL returns the PostgreSQL test server URL, or "" when none is configured.
func DatabaseURL() string {
	for _, key := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no PostgreSQL test server is configured.
func ShouldSkipDatabaseTest() bool {
	return DatabaseURL() == ""
}

// Postgres connects to the configured PostgreSQL test server, skipping the
// test when none is configured. The schema is not migrated here.
func Postgres(t testing.TB) *bun.DB {
	t.Helper()

	dbURL := DatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set - skipping PostgreSQL test", EnvTestDatabaseURL)
	}

	sqldb, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		t.Fatalf("ping postgres: %v", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}
