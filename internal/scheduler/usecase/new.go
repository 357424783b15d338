package usecase

import (
	"time"

	"ai-task-scheduler/internal/scheduler"
	"ai-task-scheduler/internal/scheduler/repository"
	pkgLog "ai-task-scheduler/pkg/log"
)

// Config carries the run-shaping knobs the pipeline needs.
type Config struct {
	ProjectID              string
	CalendarID             string
	HorizonDays            int
	MaxTasksPerDay         int
	BufferMinutes          int
	PriorityDecayPerDay    int
	DefaultDurationMinutes int

	// Now is the clock used to resolve "today". Defaults to time.Now.
	Now func() time.Time
}

type implUseCase struct {
	l        pkgLog.Logger
	tracker  repository.TaskTracker
	calendar repository.Calendar
	proposer scheduler.Proposer
	rules    *scheduler.Rules
	cfg      Config
}

// New creates a new scheduler UseCase instance.
func New(
	l pkgLog.Logger,
	tracker repository.TaskTracker,
	calendar repository.Calendar,
	proposer scheduler.Proposer,
	rules *scheduler.Rules,
	cfg Config,
) *implUseCase {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &implUseCase{
		l:        l,
		tracker:  tracker,
		calendar: calendar,
		proposer: proposer,
		rules:    rules,
		cfg:      cfg,
	}
}
