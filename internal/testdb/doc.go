// Package testdb provides database handles for store and end-to-end tests.
//
// SQLite returns a private in-memory database carrying the same schema as
// the PostgreSQL migrations, so store tests run without external services.
// Postgres connects to a real server named by TASKS_TEST_DB_URL or
// DATABASE_URL and skips the test when neither is set. WithTx runs a test
// body inside a transaction that is always rolled back, which keeps tests
// against a shared server isolated from each other.
//
// Basic usage:
//
//	func TestTaskStore(t *testing.T) {
//	    db := testdb.SQLite(t)
//	    tasks := postgres.NewTaskStore(db, nil)
//	    ...
//	}
package testdb
