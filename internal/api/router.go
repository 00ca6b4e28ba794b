package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
)

// RouterDeps holds everything NewRouter mounts.
type RouterDeps struct {
	AuthHandler    *AuthHandler
	TaskHandler    *TaskHandler
	AuthMiddleware *middleware.AuthMiddleware
	Logger         *slog.Logger
	// RequestLogging enables chi's access log middleware.
	RequestLogging bool
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if deps.RequestLogging {
		r.Use(chimiddleware.Logger)
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(log))

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", deps.AuthHandler.Register)
		r.Post("/auth/login", deps.AuthHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.Authenticate)

			r.Get("/auth/me", deps.AuthHandler.Me)

			r.Get("/tasks", deps.TaskHandler.ListTasks)
			r.Post("/tasks", deps.TaskHandler.CreateTask)
			r.Get("/tasks/{id}", deps.TaskHandler.GetTask)
			r.Put("/tasks/{id}", deps.TaskHandler.UpdateTask)
			r.Delete("/tasks/{id}", deps.TaskHandler.DeleteTask)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Route not found")
	})

	return r
}
