package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ai-task-scheduler/config"
	"ai-task-scheduler/internal/app"
	"ai-task-scheduler/pkg/log"
)

// One-shot scheduling run for cron-style invocation: exits 0 when the run
// completed (possibly with per-task write errors in the report), non-zero
// when the run itself failed.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	schedulerUC, err := app.BuildSchedulerUseCase(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to build scheduler: ", err)
		os.Exit(1)
	}

	report, err := schedulerUC.Run(ctx)
	if err != nil {
		logger.Errorf(ctx, "Run %s failed: %v", report.RunID, err)
		os.Exit(1)
	}

	logger.Infof(ctx, "Run %s finished: %d open, %d skipped, %d placed (%d degraded), %d corrections, %d write errors",
		report.RunID, report.TotalOpen, report.Skipped, len(report.Assignments),
		report.DegradedCount(), len(report.Corrections), len(report.WriteErrors))

	if len(report.WriteErrors) > 0 {
		for _, we := range report.WriteErrors {
			logger.Warnf(ctx, "Task %s failed at %s: %s", we.TaskID, we.Stage, we.Err)
		}
	}
}
