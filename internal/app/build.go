package app

import (
	"context"
	"fmt"
	"time"

	"ai-task-scheduler/config"
	"ai-task-scheduler/internal/scheduler"
	"ai-task-scheduler/internal/scheduler/proposer"
	"ai-task-scheduler/internal/scheduler/repository/gcal"
	"ai-task-scheduler/internal/scheduler/repository/todoist"
	"ai-task-scheduler/internal/scheduler/usecase"
	"ai-task-scheduler/pkg/gcalendar"
	"ai-task-scheduler/pkg/holiday"
	"ai-task-scheduler/pkg/llmprovider"
	"ai-task-scheduler/pkg/log"
)

// BuildSchedulerUseCase wires the full scheduling pipeline from config:
// calendar rules, Todoist tracker, Google Calendar, and the LLM provider
// chain. Shared by the API server and the one-shot CLI.
func BuildSchedulerUseCase(ctx context.Context, cfg *config.Config, logger log.Logger) (scheduler.UseCase, error) {
	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", scheduler.ErrInvalidTimezone, cfg.Scheduler.Timezone)
	}

	window, err := scheduler.ParseWorkWindow(cfg.Scheduler.WorkHoursStart, cfg.Scheduler.WorkHoursEnd)
	if err != nil {
		return nil, err
	}

	holidays, err := holiday.NewRegionCalendar(cfg.Scheduler.HolidayRegion)
	if err != nil {
		return nil, fmt.Errorf("holiday region: %w", err)
	}

	rules, err := scheduler.NewRules(loc, cfg.Scheduler.Workdays, window, holidays)
	if err != nil {
		return nil, fmt.Errorf("calendar rules: %w", err)
	}

	// Task tracker
	todoistClient := todoist.NewClient("", cfg.Todoist.APIToken)
	tracker := todoist.New(todoistClient, logger, loc)

	// Google Calendar
	gcalClient, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("google calendar: %w", err)
	}
	calendarRepo := gcal.New(gcalClient, cfg.Scheduler.Timezone)

	// LLM provider chain
	providerConfigs := make([]llmprovider.ProviderConfig, 0, len(cfg.LLM.Providers))
	for _, p := range cfg.LLM.Providers {
		providerConfigs = append(providerConfigs, llmprovider.ProviderConfig{
			Name:     p.Name,
			Enabled:  p.Enabled,
			Priority: p.Priority,
			APIKey:   p.APIKey,
			Model:    p.Model,
			BaseURL:  p.BaseURL,
		})
	}
	providers, err := llmprovider.InitializeProviders(providerConfigs)
	if err != nil {
		return nil, fmt.Errorf("llm providers: %w", err)
	}
	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, time.Minute),
	}, logger)

	return usecase.New(logger, tracker, calendarRepo, proposer.New(manager, logger), rules, usecase.Config{
		ProjectID:              cfg.Todoist.ProjectID,
		CalendarID:             cfg.GoogleCalendar.CalendarID,
		HorizonDays:            cfg.Scheduler.HorizonDays,
		MaxTasksPerDay:         cfg.Scheduler.MaxTasksPerDay,
		BufferMinutes:          cfg.Scheduler.BufferMinutes,
		PriorityDecayPerDay:    cfg.Scheduler.PriorityDecayPerDay,
		DefaultDurationMinutes: cfg.Scheduler.DefaultDurationMinutes,
	}), nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
