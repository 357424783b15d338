package repository

import (
	"context"
	"time"

	"ai-task-scheduler/internal/model"
)

// TaskTracker is the external service that owns the tasks.
type TaskTracker interface {
	// FetchOpenTasks returns every non-completed task in the project.
	FetchOpenTasks(ctx context.Context, projectID string) ([]model.Task, error)

	// WriteDueDate commits an assignment's date and start time back to the task.
	WriteDueDate(ctx context.Context, taskID string, start time.Time) error

	// SetPriority writes the effective (decayed) priority back to the task.
	SetPriority(ctx context.Context, taskID string, priority int) error
}

// Calendar is the external calendar the scheduler reads busy time from and
// writes task events to.
type Calendar interface {
	// FetchBusyEvents returns all timed events in [from, to].
	FetchBusyEvents(ctx context.Context, calendarID string, from, to time.Time) ([]model.Event, error)

	// CreateEvent writes a new event and returns it with its assigned ID.
	CreateEvent(ctx context.Context, calendarID, title string, start, end time.Time) (model.Event, error)

	// DeleteEvent removes a single event.
	DeleteEvent(ctx context.Context, calendarID, eventID string) error

	// FindEventsByTag returns events whose title contains the tag.
	FindEventsByTag(ctx context.Context, calendarID, tag string, from, to time.Time) ([]model.Event, error)
}
