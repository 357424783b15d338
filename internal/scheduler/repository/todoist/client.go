package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://api.todoist.com/rest/v2"

// Client is the HTTP wrapper for the Todoist REST v2 API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a new Todoist HTTP client. An empty baseURL selects the
// public API endpoint.
func NewClient(baseURL, apiToken string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiToken:   apiToken,
		httpClient: &http.Client{},
	}
}

// ListTasks fetches all active tasks, optionally filtered by project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]apiTask, error) {
	endpoint := fmt.Sprintf("%s/tasks", c.baseURL)
	if projectID != "" {
		endpoint += "?project_id=" + url.QueryEscape(projectID)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build list tasks request: %w", err)
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call todoist list API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("todoist API list error %d: %s", resp.StatusCode, string(raw))
	}

	var tasks []apiTask
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to decode todoist list response: %w", err)
	}
	return tasks, nil
}

// UpdateTask patches a task via POST /tasks/{id}.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req updateTaskRequest) error {
	endpoint := fmt.Sprintf("%s/tasks/%s", c.baseURL, url.PathEscape(taskID))

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal update task request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build update task request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call todoist update API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("todoist API update error %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

// ---- Request/Response types scoped to this package ----

// apiTask is the Todoist REST v2 task object.
type apiTask struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	Priority  int          `json:"priority"` // Todoist: 4 = most urgent
	CreatedAt string       `json:"created_at"`
	Due       *apiDue      `json:"due"`
	Duration  *apiDuration `json:"duration"`
}

type apiDue struct {
	Date        string `json:"date"`     // "2006-01-02"
	Datetime    string `json:"datetime"` // RFC3339, optional
	IsRecurring bool   `json:"is_recurring"`
}

type apiDuration struct {
	Amount int    `json:"amount"`
	Unit   string `json:"unit"` // "minute" or "day"
}

type updateTaskRequest struct {
	DueDatetime string `json:"due_datetime,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Priority    int    `json:"priority,omitempty"`
}
