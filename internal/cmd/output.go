package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/romelikethecity/fractional-job-scraper/internal/export"
)

// resolveFormat picks the effective output format. Global --json and
// --plain win over --format; with neither set, a file destination infers
// its format from the extension and falls back to CSV, a terminal gets a
// table, and a pipe gets CSV.
func resolveFormat(ctx *Context, formatFlag, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if strings.TrimSpace(formatFlag) != "" {
		return export.ParseFormat(formatFlag)
	}

	if outputPath != "" {
		if format := export.DetectFormat(outputPath); format != export.FormatTable {
			return format, nil
		}
		return export.FormatCSV, nil
	}

	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

// openOutput returns the destination writer for a command. The closer is
// a no-op when writing to the context's own writer.
func openOutput(ctx *Context, path string) (io.Writer, func() error, error) {
	if strings.TrimSpace(path) == "" {
		return ctx.Out, func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func writeOptions(ctx *Context, w io.Writer, links string) export.WriteOptions {
	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(w),
		LinkStyle:    linkStyle,
	}
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
