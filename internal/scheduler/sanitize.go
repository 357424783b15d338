package scheduler

import (
	"fmt"
	"time"

	"ai-task-scheduler/internal/model"
)

// Sanitize validates one LLM proposal against the allowed working days and
// the positive-duration constraint, substituting safe defaults on any
// violation. Every substitution is reported as a Correction so callers can
// audit what the suggestion source got wrong. days must be non-empty and
// ordered by date.
func Sanitize(p Proposal, days []model.WorkDay, today time.Time, defaultDuration int) (Candidate, []Correction) {
	var corrections []Correction

	earliest := days[0].Date
	date, ok := lookupDate(p.DueDate, days)
	if !ok {
		corrections = append(corrections, Correction{
			TaskID:   p.TaskID,
			Field:    "due_date",
			Proposed: p.DueDate,
			Applied:  earliest.Format(model.DateKey),
			Reason:   "date is missing or not in the allowed set",
		})
		date = earliest
	}

	// A stale suggestion can still slip through when the allowed set itself
	// contains past days; defend against it explicitly.
	if date.Before(midnight(today, date.Location())) {
		corrections = append(corrections, Correction{
			TaskID:   p.TaskID,
			Field:    "due_date",
			Proposed: date.Format(model.DateKey),
			Applied:  earliest.Format(model.DateKey),
			Reason:   "date is before today",
		})
		date = earliest
	}

	duration := p.DurationMinutes
	if duration <= 0 {
		corrections = append(corrections, Correction{
			TaskID:   p.TaskID,
			Field:    "duration_minutes",
			Proposed: fmt.Sprintf("%d", p.DurationMinutes),
			Applied:  fmt.Sprintf("%d", defaultDuration),
			Reason:   "duration is missing or non-positive",
		})
		duration = defaultDuration
	}

	return Candidate{
		TaskID:   p.TaskID,
		Priority: p.Priority,
		Date:     date,
		Duration: time.Duration(duration) * time.Minute,
	}, corrections
}

func lookupDate(s string, days []model.WorkDay) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, d := range days {
		if d.Key() == s {
			return d.Date, true
		}
	}
	return time.Time{}, false
}
