package scheduler

import (
	"time"

	"ai-task-scheduler/internal/model"
)

// Decay lowers a priority value toward "more urgent" as a task ages, so old
// unscheduled tasks surface without operator intervention. The result is
// clamped to the valid range: it never drops below the highest priority and
// never wraps.
func Decay(priority, ageDays, decayPerDay int) int {
	if priority > model.PriorityLowest {
		priority = model.PriorityLowest
	}
	if ageDays <= 0 || decayPerDay <= 0 {
		if priority < model.PriorityHighest {
			return model.PriorityHighest
		}
		return priority
	}

	decayed := priority - ageDays*decayPerDay
	if decayed < model.PriorityHighest {
		return model.PriorityHighest
	}
	return decayed
}

// AgeDays returns the whole days elapsed between the creation date and today,
// never negative. Both sides are compared at day granularity.
func AgeDays(created, today time.Time) int {
	c := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(t.Sub(c).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
