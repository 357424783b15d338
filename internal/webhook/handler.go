package webhook

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"ai-task-scheduler/internal/scheduler"
	pkgResponse "ai-task-scheduler/pkg/response"
)

// runTimeout bounds a background run fired from a webhook; the HTTP response
// has long been written by the time it expires.
const runTimeout = 10 * time.Minute

// todoistEvent is the subset of the Todoist webhook payload we care about.
type todoistEvent struct {
	EventName string `json:"event_name"`
}

// rescheduleEvents lists the Todoist event types that warrant a run. Other
// events are acknowledged and ignored.
var rescheduleEvents = map[string]bool{
	"item:added":     true,
	"item:updated":   true,
	"item:completed": true,
	"item:deleted":   true,
}

// HandleTodoistWebhook validates a Todoist webhook and fires a scheduling
// run in the background.
func (h *Handler) HandleTodoistWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	signature := c.GetHeader("X-Todoist-Hmac-SHA256")
	if err := h.security.ValidateTodoistSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "Todoist signature verification failed: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	if err := h.security.CheckRateLimit("todoist"); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	var event todoistEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.l.Errorf(ctx, "Failed to parse Todoist event: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if !rescheduleEvents[event.EventName] {
		h.l.Infof(ctx, "Ignoring Todoist event type: %s", event.EventName)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "unsupported event type"})
		return
	}

	if !h.running.CompareAndSwap(false, true) {
		h.l.Infof(ctx, "Run already in progress, skipping trigger for %s", event.EventName)
		pkgResponse.Accepted(c, gin.H{"status": "skipped", "reason": scheduler.ErrRunInProgress.Error()})
		return
	}

	go h.runAsync(event.EventName)

	pkgResponse.Accepted(c, gin.H{"status": "accepted", "event": event.EventName})
}

// HandleRun triggers a synchronous scheduling run and returns the report.
func (h *Handler) HandleRun(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.running.CompareAndSwap(false, true) {
		pkgResponse.Conflict(c, scheduler.ErrRunInProgress)
		return
	}
	defer h.running.Store(false)

	report, err := h.schedulerUC.Run(ctx)
	if err != nil {
		h.l.Errorf(ctx, "Scheduling run %s failed: %v", report.RunID, err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, report)
}

// runAsync executes a run detached from the triggering request.
func (h *Handler) runAsync(trigger string) {
	defer h.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	report, err := h.schedulerUC.Run(ctx)
	if err != nil {
		h.l.Errorf(ctx, "Background run triggered by %s failed: %v", trigger, err)
		return
	}
	h.l.Infof(ctx, "Background run %s triggered by %s: %d placed, %d write errors",
		report.RunID, trigger, len(report.Assignments), len(report.WriteErrors))
}

// MapRoutes registers the webhook and trigger endpoints.
func (h *Handler) MapRoutes(r *gin.RouterGroup) {
	r.POST("/webhook/todoist", h.HandleTodoistWebhook)
	r.POST("/run", h.HandleRun)
}
