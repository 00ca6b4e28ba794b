package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// TaskHandler handles the task endpoints. Every route requires an
// authenticated caller and only sees that caller's tasks.
type TaskHandler struct {
	errorResponder
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService, exposeErrors bool, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		panic("tasks service cannot be nil") // ALLOW-PANIC
	}
	return &TaskHandler{
		errorResponder: errorResponder{exposeErrors: exposeErrors},
		tasks:          tasks,
		logger:         componentLogger(logger, "task_handler"),
	}
}

// ListTasks handles GET /api/tasks with an optional status query parameter.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var status *domain.TaskStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := domain.ParseTaskStatus(raw)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		status = &parsed
	}

	tasks, err := h.tasks.List(r.Context(), callerID, status)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := TaskListResponse{Tasks: make([]TaskResponse, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, newTaskResponse(t))
	}
	shared.RespondWithList(w, r, len(resp.Tasks), resp)
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	in := service.CreateTaskInput{Title: req.Title, Description: req.Description}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		in.Status = &s
	}

	task, err := h.tasks.Create(r.Context(), callerID, in)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("task created",
		"task_id", task.ID)

	shared.RespondWithSuccess(w, r, http.StatusCreated, "Task created successfully",
		TaskEnvelope{Task: newTaskResponse(task)})
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, err := getPathUUID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.tasks.Get(r.Context(), callerID, taskID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "", TaskEnvelope{Task: newTaskResponse(task)})
}

// UpdateTask handles PUT /api/tasks/{id}. Only fields present in the body
// are changed.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, err := getPathUUID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Update(r.Context(), callerID, taskID, req.patch())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, "Task updated successfully",
		TaskEnvelope{Task: newTaskResponse(task)})
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, err := getPathUUID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.tasks.Delete(r.Context(), callerID, taskID); err != nil {
		h.handleError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("task deleted",
		"task_id", taskID)

	shared.RespondWithSuccess(w, r, http.StatusOK, "Task deleted successfully", nil)
}
