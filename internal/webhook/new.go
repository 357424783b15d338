package webhook

import (
	"sync/atomic"

	"ai-task-scheduler/internal/scheduler"
	pkgLog "ai-task-scheduler/pkg/log"
)

// Handler turns webhook and manual triggers into scheduling runs. A
// non-blocking gate serializes runs: a trigger that arrives while a run is
// in flight is acknowledged but skipped.
type Handler struct {
	schedulerUC scheduler.UseCase
	security    *SecurityValidator
	l           pkgLog.Logger
	running     atomic.Bool
}

func NewHandler(
	schedulerUC scheduler.UseCase,
	securityConfig SecurityConfig,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		schedulerUC: schedulerUC,
		security:    NewSecurityValidator(securityConfig),
		l:           l,
	}
}
