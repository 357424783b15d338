package proposer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-task-scheduler/internal/model"
	"ai-task-scheduler/internal/scheduler"
	"ai-task-scheduler/pkg/llmprovider"
	"ai-task-scheduler/pkg/log"
)

const systemPrompt = `You are a scheduling assistant. You are given a list of ` +
	`to-do tasks and a list of allowed working dates. Assign each task a due ` +
	`date from the allowed list and an estimated duration in minutes. Spread ` +
	`tasks so that no date receives more than the stated daily limit. Respond ` +
	`with ONLY a JSON array, one object per task, in the form ` +
	`[{"id": "...", "priority": 1, "due_date": "YYYY-MM-DD", "duration_minutes": 30}]. ` +
	`Do not include any other text.`

// Generator produces text from a chat-style request. *llmprovider.Manager
// satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// LLM asks a language model to propose a due date and duration per task.
type LLM struct {
	generator Generator
	l         log.Logger
}

// New creates an LLM-backed proposer.
func New(generator Generator, l log.Logger) *LLM {
	return &LLM{generator: generator, l: l}
}

// ProposeSchedule implements scheduler.Proposer. The returned proposals are
// untrusted hints; callers must sanitize them before use. A response that is
// not a JSON array is a schema error and fails the whole call.
func (p *LLM) ProposeSchedule(ctx context.Context, tasks []model.Task, allowedDates []string, maxPerDay int) ([]scheduler.Proposal, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	resp, err := p.generator.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: systemPrompt,
		Messages: []llmprovider.Message{
			{Role: "user", Content: buildPrompt(tasks, allowedDates, maxPerDay)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("propose schedule: %w", err)
	}

	proposals, err := parseProposals(resp.Text)
	if err != nil {
		p.l.Warnf(ctx, "Proposer returned unparseable output: %v", err)
		return nil, err
	}

	p.l.Infof(ctx, "Proposer returned %d proposal(s) for %d task(s) via %s/%s",
		len(proposals), len(tasks), resp.ProviderName, resp.ModelName)
	return proposals, nil
}

func buildPrompt(tasks []model.Task, allowedDates []string, maxPerDay int) string {
	var sb strings.Builder

	sb.WriteString("Tasks to schedule:\n")
	for _, t := range tasks {
		fmt.Fprintf(&sb, "- id=%s priority=%d created=%s content=%q",
			t.ID, t.Priority, t.CreatedAt.Format(model.DateKey), t.Content)
		if t.Duration > 0 {
			fmt.Fprintf(&sb, " known_duration_minutes=%d", t.Duration)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nAllowed due dates (working days only):\n")
	sb.WriteString(strings.Join(allowedDates, ", "))
	fmt.Fprintf(&sb, "\n\nAt most %d task(s) per date. Priority 1 is most urgent; schedule it earliest.\n", maxPerDay)

	return sb.String()
}

// parseProposals strips markdown code fences and decodes the JSON array.
func parseProposals(text string) ([]scheduler.Proposal, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	var proposals []scheduler.Proposal
	if err := json.Unmarshal([]byte(text), &proposals); err != nil {
		return nil, fmt.Errorf("%w: %v", scheduler.ErrProposerSchema, err)
	}
	return proposals, nil
}
