package model

import "time"

// DateKey is the canonical map key format for calendar dates.
const DateKey = "2006-01-02"

// WorkDay is one eligible working day with its concrete work window.
// Derived from calendar rules each run, never stored.
type WorkDay struct {
	Date  time.Time // Midnight in the configured time zone
	Start time.Time // Work window start on Date
	End   time.Time // Work window end on Date
}

// Key returns the date formatted as a busy-map key.
func (d WorkDay) Key() string {
	return d.Date.Format(DateKey)
}
