package usecase

import (
	"context"
	"fmt"
	"time"
)

// reconcileLookbackDays bounds how far back the stale-event search goes.
// Overdue tasks can have entries well in the past.
const reconcileLookbackDays = 60

// reconcileTask deletes every calendar event previously created for the
// task, identified by the "[<task-id>]" tag in the event title, so a fresh
// event can be written without duplicating earlier runs. Individual delete
// failures are logged and skipped; the search failure is returned because it
// means stale entries may survive next to the new one.
func (uc *implUseCase) reconcileTask(ctx context.Context, taskID string, horizonEnd time.Time) error {
	tag := fmt.Sprintf("[%s]", taskID)
	from := uc.cfg.Now().AddDate(0, 0, -reconcileLookbackDays)

	stale, err := uc.calendar.FindEventsByTag(ctx, uc.cfg.CalendarID, tag, from, horizonEnd)
	if err != nil {
		return fmt.Errorf("find stale events for %s: %w", tag, err)
	}

	for _, ev := range stale {
		if err := uc.calendar.DeleteEvent(ctx, uc.cfg.CalendarID, ev.ID); err != nil {
			uc.l.Warnf(ctx, "Failed to delete stale event %s for task %s: %v", ev.ID, taskID, err)
			continue
		}
		uc.l.Debugf(ctx, "Deleted stale event %s for task %s", ev.ID, taskID)
	}
	return nil
}
