package todoist

import (
	"context"
	"fmt"
	"time"

	"ai-task-scheduler/internal/model"
	"ai-task-scheduler/internal/scheduler/repository"
	pkgLog "ai-task-scheduler/pkg/log"
)

type implRepository struct {
	client *Client
	l      pkgLog.Logger
	loc    *time.Location
}

// New creates the Todoist-backed task tracker repository.
func New(client *Client, l pkgLog.Logger, loc *time.Location) repository.TaskTracker {
	return &implRepository{client: client, l: l, loc: loc}
}

// FetchOpenTasks lists the project's active tasks mapped to the domain model.
// Tasks with a malformed payload are skipped with a warning rather than
// failing the whole fetch.
func (r *implRepository) FetchOpenTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	apiTasks, err := r.client.ListTasks(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("todoist fetch: %w", err)
	}

	tasks := make([]model.Task, 0, len(apiTasks))
	for _, at := range apiTasks {
		task, err := r.toModel(at)
		if err != nil {
			r.l.Warnf(ctx, "Skipping malformed todoist task %s: %v", at.ID, err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// WriteDueDate commits a concrete start timestamp as the task's due datetime.
func (r *implRepository) WriteDueDate(ctx context.Context, taskID string, start time.Time) error {
	req := updateTaskRequest{DueDatetime: start.Format(time.RFC3339)}
	if err := r.client.UpdateTask(ctx, taskID, req); err != nil {
		return fmt.Errorf("todoist write due date: %w", err)
	}
	return nil
}

// SetPriority writes the effective priority back, translated to the Todoist
// scale where 4 is the most urgent.
func (r *implRepository) SetPriority(ctx context.Context, taskID string, priority int) error {
	req := updateTaskRequest{Priority: toAPIPriority(priority)}
	if err := r.client.UpdateTask(ctx, taskID, req); err != nil {
		return fmt.Errorf("todoist set priority: %w", err)
	}
	return nil
}

// toModel maps an API task to the domain model, normalizing priority so that
// 1 means most urgent throughout the scheduler.
func (r *implRepository) toModel(at apiTask) (model.Task, error) {
	created, err := time.Parse(time.RFC3339, at.CreatedAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("bad created_at %q: %w", at.CreatedAt, err)
	}

	task := model.Task{
		ID:        at.ID,
		Content:   at.Content,
		Priority:  fromAPIPriority(at.Priority),
		CreatedAt: created.In(r.loc),
	}

	if at.Due != nil {
		due, err := parseDue(at.Due, r.loc)
		if err != nil {
			return model.Task{}, err
		}
		task.Due = &due
		task.Recurring = at.Due.IsRecurring
	}

	if at.Duration != nil {
		switch at.Duration.Unit {
		case "minute":
			task.Duration = at.Duration.Amount
		case "day":
			task.Duration = at.Duration.Amount * 24 * 60
		}
	}

	return task, nil
}

func parseDue(due *apiDue, loc *time.Location) (time.Time, error) {
	if due.Datetime != "" {
		t, err := time.Parse(time.RFC3339, due.Datetime)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad due datetime %q: %w", due.Datetime, err)
		}
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation(model.DateKey, due.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad due date %q: %w", due.Date, err)
	}
	return t, nil
}

// Todoist priorities run 1..4 with 4 most urgent; the scheduler uses 1 as
// most urgent. The mapping is its own inverse.
func fromAPIPriority(p int) int {
	if p < 1 || p > 4 {
		return model.PriorityLowest
	}
	return 5 - p
}

func toAPIPriority(p int) int {
	if p < model.PriorityHighest || p > model.PriorityLowest {
		return 1
	}
	return 5 - p
}
