package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sun1tar/todo-web/internal/models"
)

func newIntegrationRepo(t *testing.T) *PostgresTaskRepository {
	t.Helper()

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		t.Skip("DB_URL not set (integration test)")
	}

	ctx := context.Background()
	repo, err := NewPostgresTaskRepository(ctx, "pgx", dbURL)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { repo.Close() })

	if err := Migrate(ctx, repo.DB()); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.DB().ExecContext(ctx, `TRUNCATE tasks`); err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestPostgresLifecycle(t *testing.T) {
	repo := newIntegrationRepo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	task := &models.Task{Title: "Buy milk", DueDate: &due, CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatal(err)
	}
	if task.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	got, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Completed || got.Description != nil || got.DueDateString() != "2026-11-01" {
		t.Fatalf("unexpected task: %+v", got)
	}

	toggled, err := repo.Toggle(ctx, task.ID, now.Add(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if !toggled.Completed {
		t.Fatalf("expected completed after toggle")
	}

	desc := "oat"
	edit := &models.Task{ID: task.ID, Title: "Buy oat milk", Description: &desc, UpdatedAt: now.Add(2 * time.Second)}
	if err := repo.Update(ctx, edit); err != nil {
		t.Fatal(err)
	}
	if !edit.Completed || !edit.CreatedAt.Equal(now) {
		t.Fatalf("update changed completed/created_at: %+v", edit)
	}

	tasks, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Buy oat milk" || tasks[0].DescriptionText() != "oat" {
		t.Fatalf("unexpected list: %+v", tasks)
	}

	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetByID(ctx, task.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, task.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestPostgresToggleUnknownID(t *testing.T) {
	repo := newIntegrationRepo(t)

	if _, err := repo.Toggle(context.Background(), 9999, time.Now()); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
