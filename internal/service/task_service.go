package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// CreateTaskInput carries the fields of a new task. A nil Status means pending.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      *domain.TaskStatus
}

// TaskService provides task operations scoped to the calling user.
// Single-task operations report ErrTaskNotFound before auth.ErrForbidden.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, status *domain.TaskStatus) ([]*domain.Task, error)
	Get(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error)
	Update(ctx context.Context, callerID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, callerID, taskID uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) TaskService {
	if tasks == nil {
		panic("tasks store cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		tasks:  tasks,
		logger: logger.With("component", "task_service"),
	}
}

// Create implements TaskService.
func (s *TaskServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	in CreateTaskInput,
) (*domain.Task, error) {
	var status domain.TaskStatus
	if in.Status != nil {
		status = *in.Status
	}

	task, err := domain.NewTask(ownerID, in.Title, in.Description, status)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save task",
			"error", err,
			"user_id", ownerID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// List implements TaskService.
func (s *TaskServiceImpl) List(
	ctx context.Context,
	ownerID uuid.UUID,
	status *domain.TaskStatus,
) ([]*domain.Task, error) {
	if status != nil && !status.Valid() {
		return nil, domain.NewValidationError("status", "must be one of pending, in-progress, done")
	}

	tasks, err := s.tasks.ListByUser(ctx, ownerID, store.TaskFilter{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get implements TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error) {
	return s.loadOwned(ctx, callerID, taskID)
}

// Update implements TaskService. An empty patch returns the task unchanged
// without writing.
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	callerID, taskID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	task, err := s.loadOwned(ctx, callerID, taskID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return task, nil
	}

	updated, err := task.Apply(patch)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, updated); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			"error", err,
			"task_id", taskID)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// Delete implements TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, callerID, taskID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, callerID, taskID); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("task deleted", "task_id", taskID)
	return nil
}

// loadOwned fetches a task and checks the caller owns it.
func (s *TaskServiceImpl) loadOwned(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}

	if err := auth.Authorize(task.UserID, callerID); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("task access denied",
			"task_id", taskID,
			"caller_id", callerID)
		return nil, err
	}
	return task, nil
}
