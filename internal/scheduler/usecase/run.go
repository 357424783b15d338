package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-task-scheduler/internal/model"
	"ai-task-scheduler/internal/scheduler"
)

// Run executes one full scheduling pass. External state is re-derived from
// scratch each time, so repeated runs converge on the same calendar instead
// of accumulating entries.
func (uc *implUseCase) Run(ctx context.Context) (scheduler.Report, error) {
	report := scheduler.Report{
		RunID:     uuid.NewString(),
		StartedAt: uc.cfg.Now(),
	}

	loc := uc.rules.Location()
	today := report.StartedAt.In(loc)

	// 1. Horizon of eligible working days.
	days := uc.rules.WorkingDays(today, today.AddDate(0, 0, uc.cfg.HorizonDays-1))
	if len(days) == 0 {
		return report, scheduler.ErrEmptyHorizon
	}
	allowedDates := make([]string, len(days))
	for i, d := range days {
		allowedDates[i] = d.Key()
	}

	// 2. Open tasks, filtered down to the ones we may move.
	open, err := uc.tracker.FetchOpenTasks(ctx, uc.cfg.ProjectID)
	if err != nil {
		return report, fmt.Errorf("%w: %v", scheduler.ErrTrackerFetch, err)
	}
	report.TotalOpen = len(open)

	tasks := make([]model.Task, 0, len(open))
	for _, t := range open {
		if t.Recurring || (!t.Unscheduled() && !t.Overdue(today)) {
			report.Skipped++
			continue
		}
		tasks = append(tasks, t)
	}
	if len(tasks) == 0 {
		uc.l.Infof(ctx, "Run %s: nothing to schedule (%d open, %d skipped)",
			report.RunID, report.TotalOpen, report.Skipped)
		return report, nil
	}
	uc.l.Infof(ctx, "Run %s: scheduling %d of %d open task(s) across %d working day(s)",
		report.RunID, len(tasks), report.TotalOpen, len(days))

	if err := ctx.Err(); err != nil {
		return report, err
	}

	// 3. Busy map from the calendar.
	busy, err := uc.fetchBusy(ctx, days)
	if err != nil {
		return report, err
	}

	// 4. Effective priorities after age decay.
	effective := make(map[string]int, len(tasks))
	for _, t := range tasks {
		age := scheduler.AgeDays(t.CreatedAt, today)
		effective[t.ID] = scheduler.Decay(t.Priority, age, uc.cfg.PriorityDecayPerDay)
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	// 5. Untrusted proposals.
	proposals, err := uc.proposer.ProposeSchedule(ctx, tasks, allowedDates, uc.cfg.MaxTasksPerDay)
	if err != nil {
		return report, err
	}

	// 6. Sanitize. Tasks the proposer ignored get an empty proposal so the
	// sanitizer fills in safe defaults; unknown or duplicate ids are dropped.
	byTask := make(map[string]scheduler.Proposal, len(proposals))
	for _, p := range proposals {
		if _, known := effective[p.TaskID]; !known {
			uc.l.Warnf(ctx, "Run %s: proposer invented task id %q, ignoring", report.RunID, p.TaskID)
			continue
		}
		if _, dup := byTask[p.TaskID]; dup {
			continue
		}
		byTask[p.TaskID] = p
	}

	candidates := make([]scheduler.Candidate, 0, len(tasks))
	for _, t := range tasks {
		p, ok := byTask[t.ID]
		if !ok {
			p = scheduler.Proposal{TaskID: t.ID}
		}
		cand, corrections := scheduler.Sanitize(p, days, today, uc.cfg.DefaultDurationMinutes)
		cand.Priority = effective[t.ID]
		report.Corrections = append(report.Corrections, corrections...)
		candidates = append(candidates, cand)
	}

	// 7. Greedy placement.
	report.Assignments = scheduler.Place(scheduler.PlaceRequest{
		Candidates: candidates,
		Days:       days,
		Busy:       busy,
		MaxPerDay:  uc.cfg.MaxTasksPerDay,
		Buffer:     time.Duration(uc.cfg.BufferMinutes) * time.Minute,
	})

	if err := ctx.Err(); err != nil {
		return report, err
	}

	// 8. Write back: reconcile, create event, update the tracker.
	uc.writeBack(ctx, tasks, &report, days)

	uc.l.Infof(ctx, "Run %s: placed %d task(s) (%d degraded, %d corrections, %d write errors)",
		report.RunID, len(report.Assignments), report.DegradedCount(),
		len(report.Corrections), len(report.WriteErrors))
	return report, nil
}

// fetchBusy loads the horizon's events and merges them into per-day busy
// interval lists keyed by date. Each event is clipped to every horizon day it
// overlaps, so an event spanning midnight (or starting before the horizon)
// still blocks the days it reaches into. All-day events block the full day.
func (uc *implUseCase) fetchBusy(ctx context.Context, days []model.WorkDay) (map[string][]scheduler.Interval, error) {
	loc := uc.rules.Location()
	from := days[0].Date
	to := days[len(days)-1].Date.AddDate(0, 0, 1)

	events, err := uc.calendar.FetchBusyEvents(ctx, uc.cfg.CalendarID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scheduler.ErrCalendarFetch, err)
	}

	buckets := make(map[string][]scheduler.Interval)
	for _, ev := range events {
		start, end := eventSpan(ev, loc)
		for _, day := range days {
			dayStart := day.Date
			dayEnd := day.Date.AddDate(0, 0, 1)
			s, e := start, end
			if s.Before(dayStart) {
				s = dayStart
			}
			if e.After(dayEnd) {
				e = dayEnd
			}
			if !s.Before(e) {
				continue
			}
			buckets[day.Key()] = append(buckets[day.Key()], scheduler.Interval{Start: s, End: e})
		}
	}

	busy := make(map[string][]scheduler.Interval, len(buckets))
	for key, intervals := range buckets {
		busy[key] = scheduler.Merge(intervals)
	}
	return busy, nil
}

// eventSpan returns an event's busy span in the scheduling time zone. Timed
// events convert directly; all-day events carry date-only values parsed as
// UTC midnights, so their dates are re-anchored to local midnights.
func eventSpan(ev model.Event, loc *time.Location) (time.Time, time.Time) {
	if !ev.AllDay {
		return ev.StartTime.In(loc), ev.EndTime.In(loc)
	}
	sy, sm, sd := ev.StartTime.Date()
	ey, em, ed := ev.EndTime.Date()
	return time.Date(sy, sm, sd, 0, 0, 0, 0, loc), time.Date(ey, em, ed, 0, 0, 0, 0, loc)
}

// writeBack commits assignments to the calendar and the tracker. Every
// failure is recorded per task and per stage; none aborts the run.
func (uc *implUseCase) writeBack(ctx context.Context, tasks []model.Task, report *scheduler.Report, days []model.WorkDay) {
	content := make(map[string]string, len(tasks))
	for _, t := range tasks {
		content[t.ID] = t.Content
	}

	horizonEnd := days[len(days)-1].End

	for _, a := range report.Assignments {
		if ctx.Err() != nil {
			report.WriteErrors = append(report.WriteErrors, scheduler.TaskError{
				TaskID: a.TaskID, Stage: "reconcile", Err: ctx.Err().Error(),
			})
			continue
		}

		if err := uc.reconcileTask(ctx, a.TaskID, horizonEnd); err != nil {
			report.WriteErrors = append(report.WriteErrors, scheduler.TaskError{
				TaskID: a.TaskID, Stage: "reconcile", Err: err.Error(),
			})
		}

		title := fmt.Sprintf("%s [%s]", content[a.TaskID], a.TaskID)
		if _, err := uc.calendar.CreateEvent(ctx, uc.cfg.CalendarID, title, a.Start, a.End); err != nil {
			report.WriteErrors = append(report.WriteErrors, scheduler.TaskError{
				TaskID: a.TaskID, Stage: "calendar_create", Err: err.Error(),
			})
		}

		if err := uc.tracker.WriteDueDate(ctx, a.TaskID, a.Start); err != nil {
			report.WriteErrors = append(report.WriteErrors, scheduler.TaskError{
				TaskID: a.TaskID, Stage: "tracker_write", Err: err.Error(),
			})
			continue
		}
		if err := uc.tracker.SetPriority(ctx, a.TaskID, a.Priority); err != nil {
			report.WriteErrors = append(report.WriteErrors, scheduler.TaskError{
				TaskID: a.TaskID, Stage: "tracker_write", Err: err.Error(),
			})
		}
	}
}
