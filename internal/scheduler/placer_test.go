package scheduler_test

import (
	"testing"
	"time"

	"ai-task-scheduler/internal/model"
	"ai-task-scheduler/internal/scheduler"
)

func day(t *testing.T, key string) model.WorkDay {
	t.Helper()
	return horizonDays(t, key)[0]
}

func TestPlaceAroundBusyIntervalWithDayCap(t *testing.T) {
	// Three working days, one task per day, 09:00-10:00 busy on the first.
	// Both tasks target day one; the more urgent task must land right after
	// the busy block and the other must spill to day two.
	days := horizonDays(t, "2026-03-02", "2026-03-03", "2026-03-04")
	d1 := days[0]

	busy := map[string][]scheduler.Interval{
		d1.Key(): {{Start: d1.Date.Add(9 * time.Hour), End: d1.Date.Add(10 * time.Hour)}},
	}

	got := scheduler.Place(scheduler.PlaceRequest{
		Candidates: []scheduler.Candidate{
			{TaskID: "urgent", Priority: 1, Date: d1.Date, Duration: time.Hour},
			{TaskID: "later", Priority: 2, Date: d1.Date, Duration: time.Hour},
		},
		Days:      days,
		Busy:      busy,
		MaxPerDay: 1,
	})

	if len(got) != 2 {
		t.Fatalf("got %d assignments, want 2", len(got))
	}

	urgent, later := got[0], got[1]
	if urgent.TaskID != "urgent" {
		t.Fatalf("priority order violated: %s placed first", urgent.TaskID)
	}
	if !urgent.Start.Equal(d1.Date.Add(10 * time.Hour)) {
		t.Errorf("urgent start = %v, want 10:00 after busy block", urgent.Start)
	}
	if urgent.Date.Format(model.DateKey) != "2026-03-02" {
		t.Errorf("urgent date = %s, want 2026-03-02", urgent.Date.Format(model.DateKey))
	}
	if later.Date.Format(model.DateKey) != "2026-03-03" {
		t.Errorf("later date = %s, want 2026-03-03 (day cap)", later.Date.Format(model.DateKey))
	}
	if urgent.Kind.Degraded() || later.Kind.Degraded() {
		t.Errorf("expected clean placements, got %q and %q", urgent.Kind, later.Kind)
	}
}

func TestPlaceRespectsBuffer(t *testing.T) {
	days := horizonDays(t, "2026-03-02")
	d1 := days[0]

	busy := map[string][]scheduler.Interval{
		d1.Key(): {{Start: d1.Date.Add(10 * time.Hour), End: d1.Date.Add(11 * time.Hour)}},
	}

	got := scheduler.Place(scheduler.PlaceRequest{
		Candidates: []scheduler.Candidate{
			{TaskID: "a", Priority: 1, Date: d1.Date, Duration: time.Hour},
			{TaskID: "b", Priority: 2, Date: d1.Date, Duration: time.Hour},
		},
		Days:      days,
		Busy:      busy,
		MaxPerDay: 10,
		Buffer:    15 * time.Minute,
	})

	if len(got) != 2 {
		t.Fatalf("got %d assignments, want 2", len(got))
	}

	// Task a fits 09:00-10:00? No: the busy interval starts at 10:00 and the
	// buffer makes 09:00+1h collide with 10:00-15m, so a jumps past the block.
	a := got[0]
	if !a.Start.Equal(d1.Date.Add(11*time.Hour + 15*time.Minute)) {
		t.Errorf("a start = %v, want 11:15 (busy end + buffer)", a.Start)
	}

	// Task b starts one buffer after a ends.
	b := got[1]
	if !b.Start.Equal(a.End.Add(15 * time.Minute)) {
		t.Errorf("b start = %v, want %v (a end + buffer)", b.Start, a.End.Add(15*time.Minute))
	}
}

func TestPlaceClampsToWorkEnd(t *testing.T) {
	days := horizonDays(t, "2026-03-02")
	d1 := days[0]

	got := scheduler.Place(scheduler.PlaceRequest{
		Candidates: []scheduler.Candidate{
			{TaskID: "long", Priority: 1, Date: d1.Date, Duration: 10 * time.Hour},
		},
		Days:      days,
		MaxPerDay: 5,
	})

	if len(got) != 1 {
		t.Fatalf("got %d assignments, want 1", len(got))
	}
	if !got[0].End.Equal(d1.End) {
		t.Errorf("end = %v, want clamped to work end %v", got[0].End, d1.End)
	}
	if got[0].Kind != model.PlacementClamped {
		t.Errorf("kind = %q, want %q", got[0].Kind, model.PlacementClamped)
	}
}

func TestPlaceNoGapFallback(t *testing.T) {
	days := horizonDays(t, "2026-03-02", "2026-03-03")

	// Saturate both days.
	candidates := []scheduler.Candidate{
		{TaskID: "t1", Priority: 1, Date: days[0].Date, Duration: time.Hour},
		{TaskID: "t2", Priority: 1, Date: days[0].Date, Duration: time.Hour},
		{TaskID: "t3", Priority: 2, Date: days[0].Date, Duration: time.Hour},
	}

	got := scheduler.Place(scheduler.PlaceRequest{
		Candidates: candidates,
		Days:       days,
		MaxPerDay:  1,
	})

	if len(got) != 3 {
		t.Fatalf("got %d assignments, want 3: tasks must never be dropped", len(got))
	}

	last := got[2]
	if last.Kind != model.PlacementNoGap {
		t.Errorf("kind = %q, want %q", last.Kind, model.PlacementNoGap)
	}
	if last.Date.Format(model.DateKey) != "2026-03-02" {
		t.Errorf("no-gap placement on %s, want first horizon day", last.Date.Format(model.DateKey))
	}
}

func TestPlaceDeterministicTieBreak(t *testing.T) {
	days := horizonDays(t, "2026-03-02", "2026-03-03")

	candidates := []scheduler.Candidate{
		{TaskID: "by-order-first", Priority: 2, Date: days[0].Date, Duration: time.Hour},
		{TaskID: "by-order-second", Priority: 2, Date: days[0].Date, Duration: time.Hour},
		{TaskID: "by-date", Priority: 2, Date: days[1].Date, Duration: time.Hour},
		{TaskID: "by-priority", Priority: 1, Date: days[1].Date, Duration: time.Hour},
	}

	got := scheduler.Place(scheduler.PlaceRequest{
		Candidates: candidates,
		Days:       days,
		MaxPerDay:  10,
	})

	want := []string{"by-priority", "by-order-first", "by-order-second", "by-date"}
	for i, id := range want {
		if got[i].TaskID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].TaskID, id)
		}
	}
}

func TestPlaceInvariants(t *testing.T) {
	days := horizonDays(t, "2026-03-02", "2026-03-03", "2026-03-04")
	d1 := days[0]

	busy := map[string][]scheduler.Interval{
		d1.Key(): {
			{Start: d1.Date.Add(9*time.Hour + 30*time.Minute), End: d1.Date.Add(10 * time.Hour)},
			{Start: d1.Date.Add(13 * time.Hour), End: d1.Date.Add(14 * time.Hour)},
		},
	}

	candidates := make([]scheduler.Candidate, 0, 8)
	for i, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		candidates = append(candidates, scheduler.Candidate{
			TaskID:   id,
			Priority: 1 + i%4,
			Date:     days[i%3].Date,
			Duration: 90 * time.Minute,
		})
	}

	buffer := 10 * time.Minute
	got := scheduler.Place(scheduler.PlaceRequest{
		Candidates: candidates,
		Days:       days,
		Busy:       busy,
		MaxPerDay:  3,
		Buffer:     buffer,
	})

	if len(got) != len(candidates) {
		t.Fatalf("got %d assignments, want %d", len(got), len(candidates))
	}

	byDate := make(map[string][]model.Assignment)
	for _, a := range got {
		if a.Kind == model.PlacementNoGap {
			continue // No-gap placements conflict by definition.
		}
		key := a.Date.Format(model.DateKey)
		byDate[key] = append(byDate[key], a)
	}

	for key, assignments := range byDate {
		for i := range assignments {
			for j := i + 1; j < len(assignments); j++ {
				x, y := assignments[i], assignments[j]
				if x.Start.Before(y.End.Add(buffer)) && y.Start.Before(x.End.Add(buffer)) {
					t.Errorf("%s: %s [%v,%v) overlaps %s [%v,%v) within buffer",
						key, x.TaskID, x.Start, x.End, y.TaskID, y.Start, y.End)
				}
			}
		}
	}

	dayByKey := make(map[string]model.WorkDay)
	for _, d := range days {
		dayByKey[d.Key()] = d
	}
	for _, a := range got {
		d := dayByKey[a.Date.Format(model.DateKey)]
		if a.Start.Before(d.Start) || a.End.After(d.End) {
			t.Errorf("%s: [%v,%v) outside work window [%v,%v]", a.TaskID, a.Start, a.End, d.Start, d.End)
		}
	}
}
