package holiday_test

import (
	"testing"
	"time"

	"ai-task-scheduler/pkg/holiday"
)

func TestNewRegionCalendar(t *testing.T) {
	for _, region := range []string{"CA", "ca", "US", "", "none"} {
		if _, err := holiday.NewRegionCalendar(region); err != nil {
			t.Errorf("NewRegionCalendar(%q): %v", region, err)
		}
	}

	if _, err := holiday.NewRegionCalendar("ZZ"); err == nil {
		t.Error("expected error for unsupported region")
	}
}

func TestCanadaDay(t *testing.T) {
	c, err := holiday.NewRegionCalendar("CA")
	if err != nil {
		t.Fatalf("NewRegionCalendar: %v", err)
	}

	canadaDay := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	if !c.IsHoliday(canadaDay) {
		t.Error("2026-07-01 should be a Canadian holiday")
	}

	ordinary := time.Date(2026, 7, 7, 0, 0, 0, 0, time.UTC)
	if c.IsHoliday(ordinary) {
		t.Error("2026-07-07 should not be a holiday")
	}
}

func TestNoneCalendar(t *testing.T) {
	if (holiday.None{}).IsHoliday(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)) {
		t.Error("None calendar must never report holidays")
	}
}
