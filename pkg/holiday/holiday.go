// Package holiday provides pluggable holiday calendars backed by
// github.com/rickar/cal region tables.
package holiday

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/us"
)

// Calendar answers whether a date is a designated holiday.
type Calendar interface {
	IsHoliday(date time.Time) bool
}

// None is a Calendar with no holidays at all.
type None struct{}

func (None) IsHoliday(time.Time) bool { return false }

type regionCalendar struct {
	cal *cal.Calendar
}

// NewRegionCalendar returns the national holiday calendar for a region code.
// Supported regions: "CA" (Canada), "US" (United States).
func NewRegionCalendar(region string) (Calendar, error) {
	c := &cal.Calendar{}

	switch strings.ToUpper(strings.TrimSpace(region)) {
	case "CA":
		c.AddHoliday(ca.Holidays...)
	case "US":
		c.AddHoliday(us.Holidays...)
	case "", "NONE":
		return None{}, nil
	default:
		return nil, fmt.Errorf("unsupported holiday region %q", region)
	}

	return &regionCalendar{cal: c}, nil
}

// IsHoliday reports whether the date is an actual or observed holiday.
func (r *regionCalendar) IsHoliday(date time.Time) bool {
	actual, observed, _ := r.cal.IsHoliday(date)
	return actual || observed
}
