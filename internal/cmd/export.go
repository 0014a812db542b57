package cmd

import (
	"context"
	"strings"

	"github.com/romelikethecity/fractional-job-scraper/internal/export"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

type ExportCmd struct {
	Output string `name:"output" short:"o" help:"Write output to a file."`
	Format string `help:"Output format: table, csv, json, md, tsv." enum:",table,csv,json,md,tsv" default:""`
	Source string `help:"Only listings from one source." enum:",fractionaljobs,indeed" default:""`
	Links  string `help:"Table link display: short or full." enum:"short,full" default:"full"`
}

func (e *ExportCmd) Run(ctx *Context) error {
	runCtx := context.Background()

	st, err := ctx.Store(runCtx)
	if err != nil {
		return err
	}

	var listings []models.Listing
	if source := strings.TrimSpace(e.Source); source != "" {
		listings, err = st.ListActiveBySource(runCtx, source)
	} else {
		listings, err = st.ListActive(runCtx)
	}
	if err != nil {
		return err
	}

	format, err := resolveFormat(ctx, e.Format, e.Output)
	if err != nil {
		return err
	}

	writer, closeOutput, err := openOutput(ctx, e.Output)
	if err != nil {
		return err
	}
	defer closeOutput()

	return export.WriteListings(writer, listings, format, writeOptions(ctx, writer, e.Links))
}
