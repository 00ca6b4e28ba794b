package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus represents where a task is in its lifecycle.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// Field limits for tasks.
const (
	TaskTitleMinLength = 3
	TaskTitleMaxLength = 255
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// ParseTaskStatus converts raw input to a TaskStatus.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", NewValidationError("status", "must be one of pending, in-progress, done")
	}
	return s, nil
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a task for userID. An empty status defaults to pending.
func NewTask(userID uuid.UUID, title string, description *string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: trimOptional(description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	verr := &ValidationError{}

	if t.ID == uuid.Nil {
		verr.Add("id", "cannot be empty")
	}
	if t.UserID == uuid.Nil {
		verr.Add("user_id", "cannot be empty")
	}
	if n := utf8.RuneCountInString(t.Title); n < TaskTitleMinLength || n > TaskTitleMaxLength {
		verr.Add("title", "must be between 3 and 255 characters")
	}
	if !t.Status.Valid() {
		verr.Add("status", "must be one of pending, in-progress, done")
	}

	return verr.OrNil()
}

// TaskPatch holds the optional fields of a partial update. Nil means
// "leave unchanged".
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Apply returns a copy of t with the patch applied. The receiver is left
// untouched when validation fails, and the owner never changes.
func (t *Task) Apply(p TaskPatch) (*Task, error) {
	updated := *t
	if p.Title != nil {
		updated.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		updated.Description = trimOptional(p.Description)
	}
	if p.Status != nil {
		updated.Status = *p.Status
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if !p.IsEmpty() {
		updated.UpdatedAt = time.Now().UTC()
	}
	return &updated, nil
}

// trimOptional trims s; a blank value becomes nil so it clears the field.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
