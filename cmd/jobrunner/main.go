package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dohsimpson/TaskTrove-sub016/config"
	"github.com/dohsimpson/TaskTrove-sub016/internal/jobs"
	"github.com/dohsimpson/TaskTrove-sub016/pkg/log"
	"github.com/dohsimpson/TaskTrove-sub016/pkg/scheduler"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting job runner...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Default timezone: %s", cfg.Timezone)

	// 3. Scheduler
	engine := scheduler.NewCronEngine(logger)
	sched := scheduler.New(ctx, engine, logger)

	registry := jobs.NewRegistry(logger)
	registered := registry.RegisterAll(ctx, sched, cfg.Jobs)
	logger.Infof(ctx, "Registered %d/%d configured jobs", registered, len(cfg.Jobs))

	sched.Start()

	for _, info := range sched.ListJobs() {
		logger.Infof(ctx, "Job %s: auto_start=%t running=%t next=%s", info.ID, info.AutoStart, info.Running, info.NextRun)
	}

	<-ctx.Done()
	logger.Info(ctx, "Shutting down...")
	sched.Shutdown()
}
