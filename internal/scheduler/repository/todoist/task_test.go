package todoist_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-task-scheduler/internal/model"
	"ai-task-scheduler/internal/scheduler/repository/todoist"
	"ai-task-scheduler/pkg/log"
)

func testLogger() log.Logger {
	return log.Init(log.ZapConfig{Mode: "development"})
}

func TestFetchOpenTasks(t *testing.T) {
	const listBody = `[
		{
			"id": "1",
			"content": "write report",
			"priority": 4,
			"created_at": "2026-03-01T10:00:00Z",
			"due": {"datetime": "2026-03-05T14:00:00Z", "date": "2026-03-05"}
		},
		{
			"id": "2",
			"content": "fix bug",
			"priority": 1,
			"created_at": "2026-02-20T08:30:00Z",
			"due": {"date": "2026-03-10", "is_recurring": true},
			"duration": {"amount": 2, "unit": "day"}
		},
		{
			"id": "3",
			"content": "no due date",
			"priority": 9,
			"created_at": "2026-03-02T09:00:00Z",
			"duration": {"amount": 45, "unit": "minute"}
		},
		{
			"id": "4",
			"content": "broken timestamps",
			"priority": 2,
			"created_at": "not-a-timestamp"
		}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/tasks" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("project_id"); got != "proj-9" {
			t.Errorf("expected project_id=proj-9, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(listBody))
	}))
	defer srv.Close()

	repo := todoist.New(todoist.NewClient(srv.URL, "tok-1"), testLogger(), time.UTC)

	tasks, err := repo.FetchOpenTasks(context.Background(), "proj-9")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Task 4 has a malformed created_at and must be skipped, not fatal.
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	// Todoist priority 4 is most urgent; the scheduler's 1 is.
	if tasks[0].Priority != model.PriorityHighest {
		t.Errorf("task 1: expected priority 1, got %d", tasks[0].Priority)
	}
	if tasks[0].Due == nil || !tasks[0].Due.Equal(time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("task 1: unexpected due %v", tasks[0].Due)
	}

	if !tasks[1].Recurring {
		t.Error("task 2: expected recurring")
	}
	if tasks[1].Duration != 2*24*60 {
		t.Errorf("task 2: expected day duration in minutes, got %d", tasks[1].Duration)
	}
	if tasks[1].Due == nil || tasks[1].Due.Format(model.DateKey) != "2026-03-10" {
		t.Errorf("task 2: unexpected due %v", tasks[1].Due)
	}

	// Out-of-range API priority is normalized to the lowest urgency.
	if tasks[2].Priority != model.PriorityLowest {
		t.Errorf("task 3: expected priority %d, got %d", model.PriorityLowest, tasks[2].Priority)
	}
	if !tasks[2].Unscheduled() {
		t.Error("task 3: expected unscheduled")
	}
	if tasks[2].Duration != 45 {
		t.Errorf("task 3: expected 45 minute duration, got %d", tasks[2].Duration)
	}
}

func TestFetchOpenTasks_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server on fire", http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := todoist.New(todoist.NewClient(srv.URL, "tok-1"), testLogger(), time.UTC)

	if _, err := repo.FetchOpenTasks(context.Background(), "proj-9"); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestWriteDueDate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks/42" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	repo := todoist.New(todoist.NewClient(srv.URL, "tok-1"), testLogger(), time.UTC)

	start := time.Date(2026, 3, 5, 10, 15, 0, 0, time.UTC)
	if err := repo.WriteDueDate(context.Background(), "42", start); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got["due_datetime"] != "2026-03-05T10:15:00Z" {
		t.Errorf("unexpected due_datetime: %v", got["due_datetime"])
	}
}

func TestSetPriority(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := todoist.New(todoist.NewClient(srv.URL, "tok-1"), testLogger(), time.UTC)

	// Scheduler priority 1 maps back to Todoist 4 (most urgent).
	if err := repo.SetPriority(context.Background(), "42", 1); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got["priority"] != float64(4) {
		t.Errorf("expected Todoist priority 4, got %v", got["priority"])
	}
}
