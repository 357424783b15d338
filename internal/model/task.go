package model

import "time"

// Priority bounds. 1 is the most urgent, 4 the least.
const (
	PriorityHighest = 1
	PriorityLowest  = 4
)

// Task is a transient snapshot of a tracker task for one scheduling run.
// The tracker owns the task; nothing here is persisted.
type Task struct {
	ID        string     // Opaque tracker identifier
	Content   string     // Textual label
	Priority  int        // Nominal priority, 1 = highest
	CreatedAt time.Time  // Creation timestamp from the tracker
	Due       *time.Time // Current due date, nil if unscheduled
	Duration  int        // Estimated duration in minutes, 0 if unknown
	Recurring bool       // Recurring tasks are never rescheduled
}

// Overdue reports whether the task's due date falls strictly before today.
// Both sides are compared at day granularity.
func (t Task) Overdue(today time.Time) bool {
	if t.Due == nil {
		return false
	}
	y1, m1, d1 := t.Due.Date()
	y2, m2, d2 := today.Date()
	due := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	ref := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return due.Before(ref)
}

// Unscheduled reports whether the task has no due date at all.
func (t Task) Unscheduled() bool {
	return t.Due == nil
}
