package scheduler

import (
	"context"

	"ai-task-scheduler/internal/model"
)

// UseCase is the business logic entrypoint: one call is one scheduling run.
type UseCase interface {
	// Run re-derives all state from the external services, places every
	// overdue or unscheduled task into a slot, reconciles stale calendar
	// entries, and writes the results back. Partial per-task failures are
	// reported inside the Report, not returned as an error.
	Run(ctx context.Context) (Report, error)
}

// Proposer is the untrusted suggestion source. Its output must always pass
// through Sanitize; only a completely unparseable response is an error.
type Proposer interface {
	ProposeSchedule(ctx context.Context, tasks []model.Task, allowedDates []string, maxPerDay int) ([]Proposal, error)
}
