package scheduler

import (
	"encoding/json"
	"time"

	"ai-task-scheduler/internal/model"
)

// Interval is a half-open [Start, End) busy time range within one day.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Proposal is one raw suggestion from the LLM for a single task. Every field
// except TaskID may be missing or invalid and must pass through Sanitize
// before use.
type Proposal struct {
	TaskID          string `json:"id"`
	Priority        int    `json:"priority"`
	DueDate         string `json:"due_date"`
	DurationMinutes int    `json:"duration_minutes"`
}

// UnmarshalJSON decodes a proposal field by field. A field of the wrong type
// is zeroed so the sanitizer substitutes a safe default and reports a
// correction; only a value that is not a JSON object fails the decode. The
// suggestion source routinely gets individual fields wrong, and per-field
// garbage must never take down the whole response.
func (p *Proposal) UnmarshalJSON(data []byte) error {
	var raw struct {
		TaskID          json.RawMessage `json:"id"`
		Priority        json.RawMessage `json:"priority"`
		DueDate         json.RawMessage `json:"due_date"`
		DurationMinutes json.RawMessage `json:"duration_minutes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Proposal{
		TaskID:          lenientString(raw.TaskID),
		Priority:        lenientInt(raw.Priority),
		DueDate:         lenientString(raw.DueDate),
		DurationMinutes: lenientInt(raw.DurationMinutes),
	}
	return nil
}

// lenientString accepts a JSON string, or a number rendered as a string
// (some models emit numeric task ids). Anything else becomes "".
func lenientString(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(data, &n) == nil {
		return n.String()
	}
	return ""
}

// lenientInt accepts a JSON number. Anything else becomes 0, which the
// sanitizer treats as missing.
func lenientInt(data json.RawMessage) int {
	if len(data) == 0 {
		return 0
	}
	var i int
	if json.Unmarshal(data, &i) == nil {
		return i
	}
	var f float64
	if json.Unmarshal(data, &f) == nil {
		return int(f)
	}
	return 0
}

// Correction records one field the sanitizer overrode. Corrections are
// reported, never raised as errors: the suggestion source is untrusted and
// recovery is the expected path.
type Correction struct {
	TaskID   string `json:"task_id"`
	Field    string `json:"field"`
	Proposed string `json:"proposed"`
	Applied  string `json:"applied"`
	Reason   string `json:"reason"`
}

// Candidate is a sanitized, placement-ready task.
type Candidate struct {
	TaskID   string
	Priority int       // Effective priority after decay, 1 = most urgent
	Date     time.Time // Sanitized target date (midnight)
	Duration time.Duration
}

// TaskError records a per-task failure during write-back. Failures never
// abort the run; they are reported so the caller can retry or alert.
type TaskError struct {
	TaskID string `json:"task_id"`
	Stage  string `json:"stage"` // "reconcile", "calendar_create", "tracker_write"
	Err    string `json:"error"`
}

// Report is the outcome of one scheduling run.
type Report struct {
	RunID       string             `json:"run_id"`
	StartedAt   time.Time          `json:"started_at"`
	TotalOpen   int                `json:"total_open"`
	Skipped     int                `json:"skipped"` // Recurring or future-due tasks left alone
	Assignments []model.Assignment `json:"assignments"`
	Corrections []Correction       `json:"corrections"`
	WriteErrors []TaskError        `json:"write_errors"`
}

// DegradedCount returns how many assignments required a compromise.
func (r Report) DegradedCount() int {
	n := 0
	for _, a := range r.Assignments {
		if a.Kind.Degraded() {
			n++
		}
	}
	return n
}
