package model

import "time"

// Environment names the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Event is a provider-independent calendar event. Busy intervals are built
// from these; the Reconciler matches them by the task tag in the title.
type Event struct {
	ID        string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	AllDay    bool // Date-only event; blocks the whole working day
}
