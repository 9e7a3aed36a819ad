package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sun1tar/todo-web/internal/models"
)

type MemoryTaskRepository struct {
	mu     sync.RWMutex
	tasks  map[int64]*models.Task
	lastID int64
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[int64]*models.Task)}
}

func (r *MemoryTaskRepository) Create(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	task.ID = r.lastID
	r.tasks[task.ID] = task.Clone()
	return nil
}

func (r *MemoryTaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return task.Clone(), nil
}

func (r *MemoryTaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*models.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		tasks = append(tasks, t.Clone())
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (r *MemoryTaskRepository) Update(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok {
		return models.ErrNotFound
	}

	updated := task.Clone()
	updated.Completed = stored.Completed
	updated.CreatedAt = stored.CreatedAt
	if updated.UpdatedAt.Before(stored.UpdatedAt) {
		updated.UpdatedAt = stored.UpdatedAt
	}
	r.tasks[task.ID] = updated

	task.Completed = updated.Completed
	task.CreatedAt = updated.CreatedAt
	task.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *MemoryTaskRepository) Toggle(ctx context.Context, id int64, at time.Time) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	stored.Completed = !stored.Completed
	if at.Before(stored.UpdatedAt) {
		at = stored.UpdatedAt
	}
	stored.UpdatedAt = at
	return stored.Clone(), nil
}

func (r *MemoryTaskRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *MemoryTaskRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryTaskRepository) Close() error {
	return nil
}
