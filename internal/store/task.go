package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskFilter narrows ListByUser results.
type TaskFilter struct {
	// Status, when set, restricts the listing to tasks with that status.
	Status *domain.TaskStatus
}

// TaskStore defines the interface for task data persistence.
// Ownership is not enforced here; callers check it before mutating.
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update overwrites the mutable fields (title, description, status,
	// updated_at) of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByUser returns the user's tasks, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)
}
