package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/sun1tar/todo-web/internal/models"
)

const taskColumns = `id, title, description, due_date, completed, created_at, updated_at`

type PostgresTaskRepository struct {
	db *sql.DB
}

// NewPostgresTaskRepository opens a pool with the given database/sql driver
// ("postgres" for lib/pq, "pgx" for pgx) and verifies the connection.
func NewPostgresTaskRepository(ctx context.Context, driver, dsn string) (*PostgresTaskRepository, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresTaskRepository{db: db}, nil
}

// DB exposes the pool for migrations.
func (r *PostgresTaskRepository) DB() *sql.DB {
	return r.db
}

func (r *PostgresTaskRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresTaskRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `INSERT INTO tasks (title, description, due_date, completed, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		task.Title, nullString(task.Description), nullDate(task.DueDate), task.Completed, task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return task, nil
}

func (r *PostgresTaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *PostgresTaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `UPDATE tasks
              SET title = $1, description = $2, due_date = $3, updated_at = GREATEST(updated_at, $4)
              WHERE id = $5
              RETURNING completed, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		task.Title, nullString(task.Description), nullDate(task.DueDate), task.UpdatedAt, task.ID,
	).Scan(&task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", task.ID, err)
	}
	return nil
}

func (r *PostgresTaskRepository) Toggle(ctx context.Context, id int64, at time.Time) (*models.Task, error) {
	query := `UPDATE tasks
              SET completed = NOT completed, updated_at = GREATEST(updated_at, $1)
              WHERE id = $2
              RETURNING ` + taskColumns
	task, err := scanTask(r.db.QueryRowContext(ctx, query, at, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle task %d: %w", id, err)
	}
	return task, nil
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		task        models.Task
		description sql.NullString
		dueDate     sql.NullTime
	)
	err := row.Scan(&task.ID, &task.Title, &description, &dueDate, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		task.Description = &description.String
	}
	if dueDate.Valid {
		d := time.Date(dueDate.Time.Year(), dueDate.Time.Month(), dueDate.Time.Day(), 0, 0, 0, 0, time.UTC)
		task.DueDate = &d
	}
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return &task, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
