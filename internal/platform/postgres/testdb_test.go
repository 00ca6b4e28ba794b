package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/testdb"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// newTestDB returns an in-memory SQLite database carrying the application schema.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	return testdb.SQLite(t)
}

func seedUser(t *testing.T, s *BunUserStore, email string) *domain.User {
	t.Helper()

	u, err := domain.NewUser("Test User", email, "$2a$10$abcdefghijklmnopqrstuuJ8vN2c0vE1XkzQm3vZrQ5yF9bH3m6S2")
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), u))
	return u
}

func seedTask(t *testing.T, s *BunTaskStore, owner uuid.UUID, title string, status domain.TaskStatus, createdAt time.Time) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(owner, title, nil, status)
	require.NoError(t, err)
	task.CreatedAt = createdAt
	task.UpdatedAt = createdAt
	require.NoError(t, s.Create(context.Background(), task))
	return task
}
