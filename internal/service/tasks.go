package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sun1tar/todo-web/internal/models"
	"github.com/sun1tar/todo-web/internal/repository"
)

const maxTitleLength = 200

// TaskInput holds raw form values for create and edit.
type TaskInput struct {
	Title       string
	Description string
	DueDate     string
}

type TaskService struct {
	repo repository.TaskRepository
	now  func() time.Time
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used for created_at/updated_at.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) List(ctx context.Context) ([]*models.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TaskService) Create(ctx context.Context, in TaskInput) (*models.Task, error) {
	task, err := Validate(in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task.Completed = false
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update replaces title, description and due date. Completion state is left as is.
func (s *TaskService) Update(ctx context.Context, id int64, in TaskInput) (*models.Task, error) {
	task, err := Validate(in)
	if err != nil {
		return nil, err
	}

	task.ID = id
	task.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Toggle(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.Toggle(ctx, id, s.now())
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Validate checks form input and converts it into an unsaved task.
func Validate(in TaskInput) (*models.Task, error) {
	verr := &ValidationError{}
	task := &models.Task{}

	task.Title = strings.TrimSpace(in.Title)
	switch {
	case task.Title == "":
		verr.add("title", "This field is required.")
	case utf8.RuneCountInString(task.Title) > maxTitleLength:
		verr.add("title", "Ensure this value has at most 200 characters.")
	}

	if desc := strings.TrimSpace(in.Description); desc != "" {
		task.Description = &desc
	}

	if raw := strings.TrimSpace(in.DueDate); raw != "" {
		due, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			verr.add("due_date", "Enter a valid date.")
		} else {
			task.DueDate = &due
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return task, nil
}
