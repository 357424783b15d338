package scheduler

import (
	"fmt"
	"strings"
	"time"

	"ai-task-scheduler/internal/model"
)

// HolidayCalendar answers whether a date is a designated holiday. Injected so
// regions and providers can be swapped without touching placement logic.
type HolidayCalendar interface {
	IsHoliday(date time.Time) bool
}

// WorkWindow is the daily clock-time range during which tasks may be placed.
type WorkWindow struct {
	StartMinutes int // Minutes since midnight
	EndMinutes   int
}

// ParseWorkWindow parses "HH:MM" start/end strings into a WorkWindow.
func ParseWorkWindow(start, end string) (WorkWindow, error) {
	s, err := parseClock(start)
	if err != nil {
		return WorkWindow{}, fmt.Errorf("invalid work_hours.start %q: %w", start, err)
	}
	e, err := parseClock(end)
	if err != nil {
		return WorkWindow{}, fmt.Errorf("invalid work_hours.end %q: %w", end, err)
	}
	if s >= e {
		return WorkWindow{}, fmt.Errorf("work window start %q must be before end %q", start, end)
	}
	return WorkWindow{StartMinutes: s, EndMinutes: e}, nil
}

func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value out of range")
	}
	return h*60 + m, nil
}

// Rules decides which dates are eligible working days and attaches the work
// window to each. Deterministic and side-effect-free.
type Rules struct {
	loc      *time.Location
	workdays map[time.Weekday]bool
	window   WorkWindow
	holidays HolidayCalendar
}

// NewRules builds calendar rules for the given timezone, weekday names
// (e.g. "monday"), work window, and holiday calendar. A nil holiday calendar
// means no holidays.
func NewRules(loc *time.Location, weekdays []string, window WorkWindow, holidays HolidayCalendar) (*Rules, error) {
	byName := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}

	wd := make(map[time.Weekday]bool)
	for _, name := range weekdays {
		day, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		wd[day] = true
	}
	if len(wd) == 0 {
		return nil, fmt.Errorf("workday set is empty")
	}

	return &Rules{loc: loc, workdays: wd, window: window, holidays: holidays}, nil
}

// Location returns the rules' time zone.
func (r *Rules) Location() *time.Location {
	return r.loc
}

// Window returns the configured work window.
func (r *Rules) Window() WorkWindow {
	return r.window
}

// IsWorkingDay reports whether the date is in the weekday set and not a
// holiday.
func (r *Rules) IsWorkingDay(date time.Time) bool {
	if !r.workdays[date.Weekday()] {
		return false
	}
	if r.holidays != nil && r.holidays.IsHoliday(date) {
		return false
	}
	return true
}

// WorkingDays returns all working days in [start, end], ordered by date, each
// with its concrete work-window timestamps. Returns an empty slice when
// start is after end.
func (r *Rules) WorkingDays(start, end time.Time) []model.WorkDay {
	var days []model.WorkDay

	d := midnight(start, r.loc)
	last := midnight(end, r.loc)

	for !d.After(last) {
		if r.IsWorkingDay(d) {
			days = append(days, model.WorkDay{
				Date:  d,
				Start: d.Add(time.Duration(r.window.StartMinutes) * time.Minute),
				End:   d.Add(time.Duration(r.window.EndMinutes) * time.Minute),
			})
		}
		d = d.AddDate(0, 0, 1)
	}

	return days
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
