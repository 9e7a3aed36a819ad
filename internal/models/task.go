package models

import (
	"errors"
	"time"
)

// DateLayout is the wire format of due dates in forms and views.
const DateLayout = "2006-01-02"

var ErrNotFound = errors.New("task not found")

type Task struct {
	ID          int64
	Title       string
	Description *string
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) String() string {
	return t.Title
}

// DescriptionText returns the description or an empty string when absent.
func (t *Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// DueDateString formats the due date as YYYY-MM-DD, empty when absent.
func (t *Task) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DateLayout)
}

// Clone returns a copy that shares no pointers with t.
func (t *Task) Clone() *Task {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}
