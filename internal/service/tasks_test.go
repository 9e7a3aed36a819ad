package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sun1tar/todo-web/internal/models"
	"github.com/sun1tar/todo-web/internal/repository"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestService() (*TaskService, *repository.MemoryTaskRepository) {
	repo := repository.NewMemoryTaskRepository()
	clock := &fakeClock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	return NewTaskService(repo).WithClock(clock.now), repo
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	task, err := svc.Create(ctx, TaskInput{Title: "Buy milk"})
	if err != nil {
		t.Fatal(err)
	}
	if task.ID != 1 {
		t.Fatalf("id=%d want 1", task.ID)
	}
	if task.Completed {
		t.Fatalf("new task must not be completed")
	}
	if task.Description != nil || task.DueDate != nil {
		t.Fatalf("optional fields should be absent: %+v", task)
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Fatalf("created_at=%v updated_at=%v", task.CreatedAt, task.UpdatedAt)
	}

	tasks, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("unexpected list: %+v", tasks)
	}
}

func TestCreateWithAllFields(t *testing.T) {
	svc, _ := newTestService()

	task, err := svc.Create(context.Background(), TaskInput{
		Title:       "  Due Date Test  ",
		Description: "Test description",
		DueDate:     "2026-10-25",
	})
	if err != nil {
		t.Fatal(err)
	}
	if task.Title != "Due Date Test" {
		t.Fatalf("title=%q", task.Title)
	}
	if task.DescriptionText() != "Test description" {
		t.Fatalf("description=%q", task.DescriptionText())
	}
	if task.DueDateString() != "2026-10-25" {
		t.Fatalf("due=%q", task.DueDateString())
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input TaskInput
		field string
	}{
		{"missing title", TaskInput{}, "title"},
		{"blank title", TaskInput{Title: "   "}, "title"},
		{"long title", TaskInput{Title: strings.Repeat("a", 201)}, "title"},
		{"bad due date", TaskInput{Title: "ok", DueDate: "25/10/2026"}, "due_date"},
		{"impossible due date", TaskInput{Title: "ok", DueDate: "2026-02-30"}, "due_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			ctx := context.Background()

			_, err := svc.Create(ctx, tt.input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Fields[tt.field] == "" {
				t.Fatalf("expected message for %s, got %v", tt.field, verr.Fields)
			}

			tasks, _ := repo.List(ctx)
			if len(tasks) != 0 {
				t.Fatalf("invalid input must not create a task")
			}
		})
	}
}

func TestTitleAtMaxLengthIsValid(t *testing.T) {
	if _, err := Validate(TaskInput{Title: strings.Repeat("é", 200)}); err != nil {
		t.Fatalf("200 characters should be accepted: %v", err)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	task, _ := svc.Create(ctx, TaskInput{Title: "Toggle Test"})

	toggled, err := svc.Toggle(ctx, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !toggled.Completed {
		t.Fatalf("expected completed after first toggle")
	}
	if !toggled.UpdatedAt.After(task.UpdatedAt) {
		t.Fatalf("updated_at did not advance")
	}

	toggled, err = svc.Toggle(ctx, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if toggled.Completed {
		t.Fatalf("expected not completed after second toggle")
	}
}

func TestUpdateKeepsCompletedAndCreatedAt(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, TaskInput{Title: "Buy milk", Description: "2 litres"})
	toggled, _ := svc.Toggle(ctx, created.ID)

	updated, err := svc.Update(ctx, created.ID, TaskInput{Title: "Buy oat milk"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Buy oat milk" {
		t.Fatalf("title=%q", updated.Title)
	}
	if updated.Description != nil {
		t.Fatalf("cleared description should be absent, got %q", *updated.Description)
	}
	if !updated.Completed {
		t.Fatalf("update must not change completed")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(toggled.UpdatedAt) {
		t.Fatalf("updated_at did not advance")
	}

	got, _ := svc.Get(ctx, created.ID)
	if got.Title != "Buy oat milk" || !got.Completed {
		t.Fatalf("unexpected stored task: %+v", got)
	}
}

func TestUpdateValidationDoesNotTouchStore(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, TaskInput{Title: "Original"})
	if _, err := svc.Update(ctx, created.ID, TaskInput{Title: ""}); err == nil {
		t.Fatalf("expected validation error")
	}

	got, _ := svc.Get(ctx, created.ID)
	if got.Title != "Original" {
		t.Fatalf("title=%q", got.Title)
	}
}

func TestDeleteThenNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	task, _ := svc.Create(ctx, TaskInput{Title: "Delete Test"})
	if err := svc.Delete(ctx, task.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get(ctx, task.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("get: %v", err)
	}
	if _, err := svc.Update(ctx, task.ID, TaskInput{Title: "x"}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.Toggle(ctx, task.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("toggle: %v", err)
	}
	if err := svc.Delete(ctx, task.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("delete: %v", err)
	}

	tasks, _ := svc.List(ctx)
	if len(tasks) != 0 {
		t.Fatalf("expected empty list, got %d", len(tasks))
	}
}

func TestGetUnknownOnEmptyStore(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Get(context.Background(), 9999); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := Validate(TaskInput{DueDate: "nope"})
	want := "invalid task: due_date: Enter a valid date.; title: This field is required."
	if err == nil || err.Error() != want {
		t.Fatalf("err=%v want %q", err, want)
	}
}
