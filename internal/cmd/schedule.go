package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/romelikethecity/fractional-job-scraper/internal/schedule"
	"github.com/romelikethecity/fractional-job-scraper/internal/snapshot"
)

type ScheduleCmd struct {
	Cron    string `help:"Cron spec (five fields); default from config."`
	Proxies string `help:"Comma-separated proxy URLs." env:"FRACJOBS_PROXIES"`
}

// Run scrapes every configured source and writes the daily snapshot on
// each tick, until the process receives SIGINT or SIGTERM.
func (s *ScheduleCmd) Run(ctx *Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := ctx.Store(runCtx)
	if err != nil {
		return err
	}
	registry, err := buildRegistry(ctx, s.Proxies)
	if err != nil {
		return err
	}
	sources, err := resolveSources(registry, ctx.Config.Pipeline.Sources, "")
	if err != nil {
		return err
	}

	engine := buildEngine(ctx, st, "", 0)
	agg := snapshot.New(st, ctx.Config.Pipeline.MinCompSample)

	spec := strings.TrimSpace(s.Cron)
	if spec == "" {
		spec = ctx.Config.Pipeline.Schedule
	}

	runner := schedule.New(ctx.Logger, func(jobCtx context.Context) {
		now := time.Now().UTC()
		ctx.UI.Banner("scrape " + now.Format("2006-01-02 15:04"))

		for _, name := range sources {
			run, runErr := engine.Run(jobCtx, registry[name])
			if run != nil {
				ctx.UI.RunSummary(run)
			}
			if runErr != nil {
				ctx.UI.Errorf("%s: %v", name, runErr)
			}
		}

		if _, _, snapErr := agg.Daily(jobCtx, now); snapErr != nil {
			ctx.UI.Errorf("snapshot: %v", snapErr)
		}
	})

	if err := runner.Start(runCtx, spec); err != nil {
		return err
	}
	ctx.UI.Infof("Scheduler running (%s). Press Ctrl-C to stop.", spec)

	<-runCtx.Done()
	runner.Stop()
	return nil
}
