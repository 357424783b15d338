package gcalendar

import (
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"
)

func TestEventTimes(t *testing.T) {
	tests := []struct {
		name      string
		event     *calendar.Event
		wantStart time.Time
		wantEnd   time.Time
		wantAll   bool
		wantOK    bool
	}{
		{
			name: "timed event",
			event: &calendar.Event{
				Start: &calendar.EventDateTime{DateTime: "2026-03-02T09:00:00Z"},
				End:   &calendar.EventDateTime{DateTime: "2026-03-02T10:00:00Z"},
			},
			wantStart: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			wantOK:    true,
		},
		{
			name: "all-day event maps to date midnights",
			event: &calendar.Event{
				Start: &calendar.EventDateTime{Date: "2026-03-02"},
				End:   &calendar.EventDateTime{Date: "2026-03-03"},
			},
			wantStart: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			wantAll:   true,
			wantOK:    true,
		},
		{
			name: "multi-day all-day event",
			event: &calendar.Event{
				Start: &calendar.EventDateTime{Date: "2026-03-02"},
				End:   &calendar.EventDateTime{Date: "2026-03-05"},
			},
			wantStart: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			wantAll:   true,
			wantOK:    true,
		},
		{
			name:   "missing start",
			event:  &calendar.Event{End: &calendar.EventDateTime{DateTime: "2026-03-02T10:00:00Z"}},
			wantOK: false,
		},
		{
			name: "malformed datetime",
			event: &calendar.Event{
				Start: &calendar.EventDateTime{DateTime: "not a time"},
				End:   &calendar.EventDateTime{DateTime: "2026-03-02T10:00:00Z"},
			},
			wantOK: false,
		},
		{
			name: "malformed date",
			event: &calendar.Event{
				Start: &calendar.EventDateTime{Date: "03/02/2026"},
				End:   &calendar.EventDateTime{Date: "2026-03-03"},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, allDay, ok := eventTimes(tt.event)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
			if allDay != tt.wantAll {
				t.Errorf("allDay = %v, want %v", allDay, tt.wantAll)
			}
		})
	}
}
