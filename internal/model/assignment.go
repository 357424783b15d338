package model

import "time"

// PlacementKind classifies how an assignment was obtained.
type PlacementKind string

const (
	// PlacementClean means the task fits its slot with no compromise.
	PlacementClean PlacementKind = ""
	// PlacementClamped means the end time was cut to the work-window end.
	PlacementClamped PlacementKind = "clamped"
	// PlacementNoGap means no conflict-free slot existed anywhere in the
	// horizon and the task was forced onto the first day.
	PlacementNoGap PlacementKind = "no_gap"
)

// Degraded reports whether the placement required a compromise.
func (k PlacementKind) Degraded() bool {
	return k != PlacementClean
}

// Assignment is the scheduler's output for one task: a concrete slot on a
// working day plus the effective (decayed) priority.
type Assignment struct {
	TaskID   string
	Date     time.Time // Midnight of the working day
	Start    time.Time
	End      time.Time
	Priority int // Effective priority after decay
	Kind     PlacementKind
}
