package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/uptrace/bun"
)

// BunTaskStore implements store.TaskStore on top of bun.
type BunTaskStore struct {
	db     bun.IDB
	logger *slog.Logger
}

var _ store.TaskStore = (*BunTaskStore)(nil)

// NewTaskStore creates a BunTaskStore. db may be a *bun.DB or a bun.Tx.
func NewTaskStore(db bun.IDB, l *slog.Logger) *BunTaskStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC
	}
	if l == nil {
		l = slog.Default()
	}
	return &BunTaskStore{
		db:     db,
		logger: l.With(slog.String("component", "task_store")),
	}
}

// Create inserts a task. A missing owner surfaces as store.ErrInvalidEntity.
func (s *BunTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "create", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	if _, err := s.db.NewInsert().Model(newTaskModel(task)).Exec(ctx); err != nil {
		return store.NewStoreError("task", "create", MapError(err))
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID retrieves a task by ID.
func (s *BunTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m := new(taskModel)
	err := s.db.NewSelect().Model(m).Where("t.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", mapped)
	}
	return m.toDomain(), nil
}

// Update writes the mutable columns of an existing task.
func (s *BunTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "update", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	result, err := s.db.NewUpdate().
		Model(newTaskModel(task)).
		Column("title", "description", "status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return store.NewStoreError("task", "update", MapError(err))
	}
	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return err
		}
		return store.NewStoreError("task", "update", err)
	}

	log.Debug("task updated", slog.String("task_id", task.ID.String()))
	return nil
}

// Delete removes a task by ID.
func (s *BunTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.NewDelete().
		Model((*taskModel)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return store.NewStoreError("task", "delete", MapError(err))
	}
	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return err
		}
		return store.NewStoreError("task", "delete", err)
	}

	log.Debug("task deleted", slog.String("task_id", id.String()))
	return nil
}

// ListByUser returns the user's tasks ordered by creation time, newest first.
func (s *BunTaskStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	var models []taskModel
	q := s.db.NewSelect().
		Model(&models).
		Where("t.user_id = ?", userID)
	if filter.Status != nil {
		q = q.Where("t.status = ?", string(*filter.Status))
	}

	if err := q.OrderExpr("t.created_at DESC").Scan(ctx); err != nil {
		return nil, store.NewStoreError("task", "list", MapError(err))
	}

	tasks := make([]*domain.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, models[i].toDomain())
	}
	return tasks, nil
}
