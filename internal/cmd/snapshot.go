package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/romelikethecity/fractional-job-scraper/internal/export"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
	"github.com/romelikethecity/fractional-job-scraper/internal/snapshot"
)

type SnapshotCmd struct {
	Date   string `help:"Snapshot date (YYYY-MM-DD); default today."`
	Latest bool   `help:"Show the most recent stored snapshot instead of computing one."`
}

func (s *SnapshotCmd) Run(ctx *Context) error {
	runCtx := context.Background()

	if s.Latest && strings.TrimSpace(s.Date) != "" {
		return fmt.Errorf("--date cannot be combined with --latest")
	}

	now := time.Now().UTC()
	if strings.TrimSpace(s.Date) != "" {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(s.Date))
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", s.Date)
		}
		now = parsed
	}

	st, err := ctx.Store(runCtx)
	if err != nil {
		return err
	}
	agg := snapshot.New(st, ctx.Config.Pipeline.MinCompSample)

	var (
		snap *models.ListingSnapshot
		comp []models.CompensationSnapshot
	)
	if s.Latest {
		snap, comp, err = agg.Latest(runCtx)
		if err != nil {
			return err
		}
		if snap == nil {
			ctx.UI.Warnf("no snapshots recorded yet; run fracjobs snapshot first")
			return nil
		}
	} else {
		snap, comp, err = agg.Daily(runCtx, now)
		if err != nil {
			return err
		}
	}

	format := export.FormatTable
	if ctx.JSONOutput {
		format = export.FormatJSON
	}
	return export.WriteSnapshot(ctx.Out, snap, comp, format)
}

type WeeklyCmd struct {
	Output string `name:"output" short:"o" help:"Write the summary to a file."`
}

func (w *WeeklyCmd) Run(ctx *Context) error {
	runCtx := context.Background()

	st, err := ctx.Store(runCtx)
	if err != nil {
		return err
	}

	agg := snapshot.New(st, ctx.Config.Pipeline.MinCompSample)
	summary, err := agg.Weekly(runCtx, time.Now().UTC())
	if err != nil {
		return err
	}

	writer, closeOutput, err := openOutput(ctx, w.Output)
	if err != nil {
		return err
	}
	defer closeOutput()

	format := export.FormatMarkdown
	if ctx.JSONOutput {
		format = export.FormatJSON
	}
	return export.WriteWeekly(writer, summary, format)
}
