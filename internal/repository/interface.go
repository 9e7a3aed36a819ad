package repository

import (
	"context"
	"time"

	"github.com/sun1tar/todo-web/internal/models"
)

// TaskRepository persists tasks. Lookups of unknown ids return models.ErrNotFound.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	List(ctx context.Context) ([]*models.Task, error)
	// Update writes title, description, due date and updated_at. Completed and
	// CreatedAt are reloaded from storage into task. UpdatedAt never moves backwards.
	Update(ctx context.Context, task *models.Task) error
	Toggle(ctx context.Context, id int64, at time.Time) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close() error
}
