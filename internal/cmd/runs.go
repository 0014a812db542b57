package cmd

import (
	"context"

	"github.com/romelikethecity/fractional-job-scraper/internal/export"
)

const defaultRunsLimit = 20

type RunsCmd struct {
	Limit int `help:"Number of runs to show." default:"20"`
}

func (r *RunsCmd) Run(ctx *Context) error {
	runCtx := context.Background()

	st, err := ctx.Store(runCtx)
	if err != nil {
		return err
	}

	limit := r.Limit
	if limit <= 0 {
		limit = defaultRunsLimit
	}
	runs, err := st.ListRuns(runCtx, limit)
	if err != nil {
		return err
	}

	format := export.FormatTable
	if ctx.JSONOutput {
		format = export.FormatJSON
	} else if ctx.PlainText {
		format = export.FormatTSV
	}
	return export.WriteRuns(ctx.Out, runs, format)
}
