package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Task is the domain model for a to-do entry.
//
// ID is internal only: it is never persisted and is regenerated on every
// load. Users address tasks by their position in the owning list.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	StartDate   string
	EndDate     string
	Completed   bool
}

// New returns an incomplete task with a fresh ID.
func New(title, description, startDate, endDate string) Task {
	return Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
	}
}

func (t *Task) MarkCompleted() { t.Completed = true }

// Glyph is the completion marker used in every rendering.
func (t Task) Glyph() string {
	if t.Completed {
		return "✓"
	}
	return "✗"
}

// Render returns the multi-line summary shown by the text menu.
func (t Task) Render() string {
	return fmt.Sprintf("[%s] %s\n    Description: %s\n    Start Date: %s\n    End Date: %s",
		t.Glyph(), t.Title, t.Description, t.StartDate, t.EndDate)
}
