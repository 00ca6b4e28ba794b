package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
)

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantRaw bool
	}{
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", sql.ErrNoRows), wantIs: store.ErrNotFound},
		{name: "pg unique", err: &pgconn.PgError{Code: "23505"}, wantIs: store.ErrDuplicate},
		{name: "pg foreign key", err: &pgconn.PgError{Code: "23503"}, wantIs: store.ErrInvalidEntity},
		{name: "pg check", err: &pgconn.PgError{Code: "23514"}, wantIs: store.ErrInvalidEntity},
		{name: "pg not null", err: &pgconn.PgError{Code: "23502"}, wantIs: store.ErrInvalidEntity},
		{
			name:   "sqlite unique",
			err:    errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"),
			wantIs: store.ErrDuplicate,
		},
		{name: "sqlite foreign key", err: errors.New("FOREIGN KEY constraint failed"), wantIs: store.ErrInvalidEntity},
		{name: "unrelated", err: plain, wantRaw: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.err)
			if tc.wantRaw {
				assert.Same(t, plain, got)
				return
			}
			assert.ErrorIs(t, got, tc.wantIs)
		})
	}

	assert.NoError(t, MapError(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, checkRowsAffected(fakeResult{rows: 1}, store.ErrTaskNotFound))
	assert.ErrorIs(t, checkRowsAffected(fakeResult{rows: 0}, store.ErrTaskNotFound), store.ErrTaskNotFound)
	assert.Error(t, checkRowsAffected(fakeResult{err: errors.New("boom")}, store.ErrTaskNotFound))
	assert.Error(t, checkRowsAffected(nil, store.ErrTaskNotFound))
}
