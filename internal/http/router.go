package http

import (
	"net/http"

	"github.com/sun1tar/todo-web/internal/middleware"
)

// NewRouter maps the task routes plus health, readiness and metrics endpoints.
func NewRouter(h *TaskHandler, db DBPinger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.ListTasks)
	mux.HandleFunc("GET /create/{$}", h.NewTaskForm)
	mux.HandleFunc("POST /create/{$}", h.CreateTask)
	mux.HandleFunc("GET /{id}/{$}", h.GetTask)
	mux.HandleFunc("GET /{id}/edit/{$}", h.EditTaskForm)
	mux.HandleFunc("POST /{id}/edit/{$}", h.UpdateTask)
	mux.HandleFunc("GET /{id}/toggle/{$}", h.ToggleTask)
	mux.HandleFunc("GET /{id}/delete/{$}", h.ConfirmDeleteTask)
	mux.HandleFunc("POST /{id}/delete/{$}", h.DeleteTask)

	mux.HandleFunc("GET /healthz", HealthzHandler)
	mux.HandleFunc("GET /readyz", ReadyzHandler(db))
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	return mux
}
