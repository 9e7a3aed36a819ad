package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/sun1tar/todo-web/internal/middleware"
	"github.com/sun1tar/todo-web/internal/models"
	"github.com/sun1tar/todo-web/internal/service"
	sharedmw "github.com/sun1tar/todo-web/shared/middleware"
)

type TaskHandler struct {
	taskService *service.TaskService
	views       *Views
	logger      *logrus.Logger
}

func NewTaskHandler(ts *service.TaskService, views *Views, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: ts,
		views:       views,
		logger:      logger,
	}
}

type listView struct {
	Tasks []*models.Task
}

type taskView struct {
	Task      *models.Task
	CSRFToken string
}

type formValues struct {
	Title       string
	Description string
	DueDate     string
}

type formView struct {
	Task      *models.Task
	Form      formValues
	Errors    map[string]string
	Action    string
	CSRFToken string
}

type errorView struct {
	Title   string
	Message string
}

func (h *TaskHandler) logEntry(r *http.Request, handler string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"component":  "http_handler",
		"handler":    handler,
		"request_id": sharedmw.GetRequestID(r.Context()),
	})
}

// ListTasks handles GET /
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "ListTasks")

	tasks, err := h.taskService.List(r.Context())
	if err != nil {
		h.serverError(w, logEntry, err, "failed to list tasks")
		return
	}

	logEntry.WithField("count", len(tasks)).Debug("tasks listed")
	h.render(w, logEntry, http.StatusOK, viewList, listView{Tasks: tasks})
}

// NewTaskForm handles GET /create/
func (h *TaskHandler) NewTaskForm(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "NewTaskForm")
	h.render(w, logEntry, http.StatusOK, viewForm, formView{
		Action:    "/create/",
		CSRFToken: middleware.CSRFToken(r.Context()),
	})
}

// CreateTask handles POST /create/
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "CreateTask")

	form, err := readForm(r)
	if err != nil {
		logEntry.WithError(err).Warn("invalid form body")
		h.renderError(w, logEntry, http.StatusBadRequest, "Bad request", "The submitted form could not be read.")
		return
	}

	task, err := h.taskService.Create(r.Context(), service.TaskInput(form))
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		logEntry.WithField("fields", verr.Fields).Warn("task validation failed")
		h.render(w, logEntry, http.StatusOK, viewForm, formView{
			Form:      form,
			Errors:    verr.Fields,
			Action:    "/create/",
			CSRFToken: middleware.CSRFToken(r.Context()),
		})
		return
	}
	if err != nil {
		h.serverError(w, logEntry, err, "failed to create task")
		return
	}

	logEntry.WithField("task_id", task.ID).Info("task created successfully")
	http.Redirect(w, r, "/", http.StatusFound)
}

// GetTask handles GET /{id}/
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "GetTask")

	task, ok := h.loadTask(w, r, logEntry)
	if !ok {
		return
	}

	logEntry.WithField("task_id", task.ID).Debug("task retrieved")
	h.render(w, logEntry, http.StatusOK, viewDetail, taskView{Task: task})
}

// EditTaskForm handles GET /{id}/edit/
func (h *TaskHandler) EditTaskForm(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "EditTaskForm")

	task, ok := h.loadTask(w, r, logEntry)
	if !ok {
		return
	}

	h.render(w, logEntry, http.StatusOK, viewForm, formView{
		Task: task,
		Form: formValues{
			Title:       task.Title,
			Description: task.DescriptionText(),
			DueDate:     task.DueDateString(),
		},
		Action:    editPath(task.ID),
		CSRFToken: middleware.CSRFToken(r.Context()),
	})
}

// UpdateTask handles POST /{id}/edit/
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "UpdateTask")

	existing, ok := h.loadTask(w, r, logEntry)
	if !ok {
		return
	}

	form, err := readForm(r)
	if err != nil {
		logEntry.WithError(err).Warn("invalid form body")
		h.renderError(w, logEntry, http.StatusBadRequest, "Bad request", "The submitted form could not be read.")
		return
	}

	task, err := h.taskService.Update(r.Context(), existing.ID, service.TaskInput(form))
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		logEntry.WithFields(logrus.Fields{"task_id": existing.ID, "fields": verr.Fields}).Warn("task validation failed")
		h.render(w, logEntry, http.StatusOK, viewForm, formView{
			Task:      existing,
			Form:      form,
			Errors:    verr.Fields,
			Action:    editPath(existing.ID),
			CSRFToken: middleware.CSRFToken(r.Context()),
		})
		return
	case errors.Is(err, models.ErrNotFound):
		logEntry.WithField("task_id", existing.ID).Warn("task not found for update")
		h.notFound(w, logEntry)
		return
	case err != nil:
		h.serverError(w, logEntry, err, "failed to update task")
		return
	}

	logEntry.WithField("task_id", task.ID).Info("task updated successfully")
	http.Redirect(w, r, "/", http.StatusFound)
}

// ToggleTask handles GET /{id}/toggle/
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "ToggleTask")

	id, ok := parseID(r)
	if !ok {
		h.notFound(w, logEntry)
		return
	}

	task, err := h.taskService.Toggle(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		logEntry.WithField("task_id", id).Warn("task not found for toggle")
		h.notFound(w, logEntry)
		return
	}
	if err != nil {
		h.serverError(w, logEntry, err, "failed to toggle task")
		return
	}

	logEntry.WithFields(logrus.Fields{"task_id": id, "completed": task.Completed}).Info("task toggled")
	http.Redirect(w, r, "/", http.StatusFound)
}

// ConfirmDeleteTask handles GET /{id}/delete/
func (h *TaskHandler) ConfirmDeleteTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "ConfirmDeleteTask")

	task, ok := h.loadTask(w, r, logEntry)
	if !ok {
		return
	}

	h.render(w, logEntry, http.StatusOK, viewConfirmDelete, taskView{
		Task:      task,
		CSRFToken: middleware.CSRFToken(r.Context()),
	})
}

// DeleteTask handles POST /{id}/delete/
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "DeleteTask")

	id, ok := parseID(r)
	if !ok {
		h.notFound(w, logEntry)
		return
	}

	err := h.taskService.Delete(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		logEntry.WithField("task_id", id).Warn("task not found for deletion")
		h.notFound(w, logEntry)
		return
	}
	if err != nil {
		h.serverError(w, logEntry, err, "failed to delete task")
		return
	}

	logEntry.WithField("task_id", id).Info("task deleted successfully")
	http.Redirect(w, r, "/", http.StatusFound)
}

// loadTask resolves {id} and writes the 404 or 500 response itself when it
// returns false.
func (h *TaskHandler) loadTask(w http.ResponseWriter, r *http.Request, logEntry *logrus.Entry) (*models.Task, bool) {
	id, ok := parseID(r)
	if !ok {
		h.notFound(w, logEntry)
		return nil, false
	}

	task, err := h.taskService.Get(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		logEntry.WithField("task_id", id).Warn("task not found")
		h.notFound(w, logEntry)
		return nil, false
	}
	if err != nil {
		h.serverError(w, logEntry, err, "failed to get task")
		return nil, false
	}
	return task, true
}

func (h *TaskHandler) render(w http.ResponseWriter, logEntry *logrus.Entry, status int, page string, data any) {
	if err := h.views.Render(w, status, page, data); err != nil {
		logEntry.WithError(err).Error("failed to render view")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *TaskHandler) renderError(w http.ResponseWriter, logEntry *logrus.Entry, status int, title, message string) {
	h.render(w, logEntry, status, viewError, errorView{Title: title, Message: message})
}

func (h *TaskHandler) notFound(w http.ResponseWriter, logEntry *logrus.Entry) {
	h.renderError(w, logEntry, http.StatusNotFound, "Not found", "The task you are looking for does not exist.")
}

func (h *TaskHandler) serverError(w http.ResponseWriter, logEntry *logrus.Entry, err error, msg string) {
	logEntry.WithError(err).Error(msg)
	h.renderError(w, logEntry, http.StatusInternalServerError, "Server error", "Something went wrong. Please try again later.")
}

// parseID accepts only plain decimal digits, so "+1" or "-1" never match a task.
func parseID(r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func readForm(r *http.Request) (formValues, error) {
	if err := r.ParseForm(); err != nil {
		return formValues{}, err
	}
	return formValues{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		DueDate:     r.PostFormValue("due_date"),
	}, nil
}

func editPath(id int64) string {
	return "/" + strconv.FormatInt(id, 10) + "/edit/"
}
