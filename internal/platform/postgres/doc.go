// Package postgres provides PostgreSQL-backed implementations of the
// persistence interfaces defined in the internal/store package. Queries are
// built with the bun ORM over a pgx database/sql connection, and the schema
// is managed by goose migrations embedded in this package.
//
// The stores only depend on bun.IDB, so tests exercise them against an
// in-memory SQLite database through bun's sqliteshim driver.
package postgres
