package scheduler

import (
	"sort"
	"time"

	"ai-task-scheduler/internal/model"
)

// PlaceRequest carries everything Place needs for one run. Busy maps a date
// key (model.DateKey) to that day's busy intervals; days absent from the map
// are fully free.
type PlaceRequest struct {
	Candidates []Candidate
	Days       []model.WorkDay
	Busy       map[string][]Interval
	MaxPerDay  int
	Buffer     time.Duration
}

// Place greedily assigns each candidate a concrete slot. Candidates are
// ordered by effective priority, then target date, then input order, so
// placement is deterministic. Placement never fails on conflict: when a task
// cannot fully fit it degrades to a clamped or no-gap assignment instead of
// being dropped.
func Place(req PlaceRequest) []model.Assignment {
	if len(req.Candidates) == 0 || len(req.Days) == 0 {
		return nil
	}

	order := make([]Candidate, len(req.Candidates))
	copy(order, req.Candidates)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Priority != order[j].Priority {
			return order[i].Priority < order[j].Priority
		}
		return order[i].Date.Before(order[j].Date)
	})

	dayIndex := make(map[string]int, len(req.Days))
	busy := make(map[string][]Interval, len(req.Days))
	nextFree := make(map[string]time.Time, len(req.Days))
	counts := make(map[string]int, len(req.Days))

	for i, day := range req.Days {
		key := day.Key()
		dayIndex[key] = i
		busy[key] = Merge(req.Busy[key])
		nextFree[key] = day.Start
	}

	assignments := make([]model.Assignment, 0, len(order))

	for _, cand := range order {
		startIdx, ok := dayIndex[cand.Date.Format(model.DateKey)]
		if !ok {
			startIdx = 0
		}

		placed := false

		// Walk the horizon starting at the target date, wrapping around so
		// spare capacity on earlier days is used before degrading.
		for off := 0; off < len(req.Days); off++ {
			day := req.Days[(startIdx+off)%len(req.Days)]
			key := day.Key()

			if req.MaxPerDay > 0 && counts[key] >= req.MaxPerDay {
				continue
			}

			start := nextFree[key]
			for _, iv := range busy[key] {
				if start.Before(iv.End.Add(req.Buffer)) && start.Add(cand.Duration).After(iv.Start.Add(-req.Buffer)) {
					start = iv.End.Add(req.Buffer)
				}
			}

			if !start.Before(day.End) {
				continue // No room left inside the work window.
			}

			end := start.Add(cand.Duration)
			kind := model.PlacementClean
			if end.After(day.End) {
				end = day.End
				kind = model.PlacementClamped
			}

			assignments = append(assignments, model.Assignment{
				TaskID:   cand.TaskID,
				Date:     day.Date,
				Start:    start,
				End:      end,
				Priority: cand.Priority,
				Kind:     kind,
			})

			busy[key] = Merge(append(busy[key], Interval{Start: start, End: end}))
			nextFree[key] = end.Add(req.Buffer)
			counts[key]++
			placed = true
			break
		}

		if placed {
			continue
		}

		// Constraint exhaustion: no day in the horizon admits the task.
		// Force it onto the first day and flag it so the caller can alert;
		// tasks are never silently dropped.
		first := req.Days[0]
		end := first.Start.Add(cand.Duration)
		if end.After(first.End) {
			end = first.End
		}
		assignments = append(assignments, model.Assignment{
			TaskID:   cand.TaskID,
			Date:     first.Date,
			Start:    first.Start,
			End:      end,
			Priority: cand.Priority,
			Kind:     model.PlacementNoGap,
		})
		busy[first.Key()] = Merge(append(busy[first.Key()], Interval{Start: first.Start, End: end}))
	}

	return assignments
}
