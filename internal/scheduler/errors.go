package scheduler

import "errors"

// Domain-specific errors for the scheduler package.
var (
	ErrEmptyHorizon    = errors.New("no working days in scheduling horizon")
	ErrProposerSchema  = errors.New("suggestion source returned an unparseable schema")
	ErrRunInProgress   = errors.New("a scheduling run is already in progress")
	ErrTrackerFetch    = errors.New("failed to fetch tasks from tracker")
	ErrCalendarFetch   = errors.New("failed to fetch busy events from calendar")
	ErrInvalidTimezone = errors.New("invalid timezone")
)
