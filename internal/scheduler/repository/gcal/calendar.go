package gcal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-task-scheduler/internal/model"
	"ai-task-scheduler/internal/scheduler/repository"
	"ai-task-scheduler/pkg/gcalendar"
)

type implRepository struct {
	client   *gcalendar.Client
	timezone string
}

// New creates the Google Calendar-backed repository.
func New(client *gcalendar.Client, timezone string) repository.Calendar {
	return &implRepository{client: client, timezone: timezone}
}

func (r *implRepository) FetchBusyEvents(ctx context.Context, calendarID string, from, to time.Time) ([]model.Event, error) {
	events, err := r.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: calendarID,
		TimeMin:    from,
		TimeMax:    to,
	})
	if err != nil {
		return nil, fmt.Errorf("gcal fetch busy events: %w", err)
	}
	return toModel(events), nil
}

func (r *implRepository) CreateEvent(ctx context.Context, calendarID, title string, start, end time.Time) (model.Event, error) {
	created, err := r.client.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID: calendarID,
		Summary:    title,
		StartTime:  start,
		EndTime:    end,
		Timezone:   r.timezone,
	})
	if err != nil {
		return model.Event{}, fmt.Errorf("gcal create event: %w", err)
	}
	return model.Event{
		ID:        created.ID,
		Title:     created.Summary,
		StartTime: created.StartTime,
		EndTime:   created.EndTime,
	}, nil
}

func (r *implRepository) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := r.client.DeleteEvent(ctx, calendarID, eventID); err != nil {
		return fmt.Errorf("gcal delete event: %w", err)
	}
	return nil
}

// FindEventsByTag uses the API's free-text search, then re-checks the title
// because the search also matches descriptions and attendees.
func (r *implRepository) FindEventsByTag(ctx context.Context, calendarID, tag string, from, to time.Time) ([]model.Event, error) {
	events, err := r.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: calendarID,
		TimeMin:    from,
		TimeMax:    to,
		Query:      tag,
	})
	if err != nil {
		return nil, fmt.Errorf("gcal find events by tag: %w", err)
	}

	var matched []gcalendar.Event
	for _, ev := range events {
		if strings.Contains(ev.Summary, tag) {
			matched = append(matched, ev)
		}
	}
	return toModel(matched), nil
}

func toModel(events []gcalendar.Event) []model.Event {
	result := make([]model.Event, 0, len(events))
	for _, ev := range events {
		result = append(result, model.Event{
			ID:        ev.ID,
			Title:     ev.Summary,
			StartTime: ev.StartTime,
			EndTime:   ev.EndTime,
			AllDay:    ev.AllDay,
		})
	}
	return result
}
