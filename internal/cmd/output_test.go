package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/romelikethecity/fractional-job-scraper/internal/export"
	"github.com/romelikethecity/fractional-job-scraper/internal/ui"
)

func TestResolveFormatGlobalFlagsWin(t *testing.T) {
	t.Run("json flag", func(t *testing.T) {
		ctx := &Context{Out: io.Discard, JSONOutput: true}
		format, err := resolveFormat(ctx, "csv", "out.md")
		if err != nil {
			t.Fatalf("resolveFormat() error = %v", err)
		}
		if format != export.FormatJSON {
			t.Fatalf("resolveFormat() = %q, want json", format)
		}
	})

	t.Run("plain flag", func(t *testing.T) {
		ctx := &Context{Out: io.Discard, PlainText: true}
		format, err := resolveFormat(ctx, "csv", "")
		if err != nil {
			t.Fatalf("resolveFormat() error = %v", err)
		}
		if format != export.FormatTSV {
			t.Fatalf("resolveFormat() = %q, want tsv", format)
		}
	})
}

func TestResolveFormatFlag(t *testing.T) {
	ctx := &Context{Out: io.Discard}

	format, err := resolveFormat(ctx, "md", "listings.csv")
	if err != nil {
		t.Fatalf("resolveFormat() error = %v", err)
	}
	if format != export.FormatMarkdown {
		t.Fatalf("resolveFormat() = %q, want md", format)
	}
}

func TestResolveFormatUnknown(t *testing.T) {
	ctx := &Context{Out: io.Discard}

	_, err := resolveFormat(ctx, "xml", "")
	if err == nil || err.Error() != `unknown format "xml"` {
		t.Fatalf("resolveFormat() error = %v, want unknown format", err)
	}
}

func TestResolveFormatFromOutputPath(t *testing.T) {
	tests := []struct {
		path string
		want export.Format
	}{
		{"listings.json", export.FormatJSON},
		{"listings.md", export.FormatMarkdown},
		{"listings.tsv", export.FormatTSV},
		{"listings.csv", export.FormatCSV},
		{"listings.txt", export.FormatCSV},
		{"listings", export.FormatCSV},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ctx := &Context{Out: io.Discard}
			format, err := resolveFormat(ctx, "", tt.path)
			if err != nil {
				t.Fatalf("resolveFormat() error = %v", err)
			}
			if format != tt.want {
				t.Fatalf("resolveFormat(%q) = %q, want %q", tt.path, format, tt.want)
			}
		})
	}
}

func TestResolveFormatPipeDefaultsToCSV(t *testing.T) {
	ctx := &Context{Out: &bytes.Buffer{}}

	format, err := resolveFormat(ctx, "", "")
	if err != nil {
		t.Fatalf("resolveFormat() error = %v", err)
	}
	if format != export.FormatCSV {
		t.Fatalf("resolveFormat() = %q, want csv", format)
	}
}

func TestOpenOutputDefaultsToContextWriter(t *testing.T) {
	var buf bytes.Buffer
	ctx := &Context{Out: &buf}

	writer, closeOutput, err := openOutput(ctx, "")
	if err != nil {
		t.Fatalf("openOutput() error = %v", err)
	}
	defer closeOutput()

	if writer != &buf {
		t.Fatal("openOutput() did not return the context writer")
	}
	if err := closeOutput(); err != nil {
		t.Fatalf("closeOutput() error = %v", err)
	}
}

func TestOpenOutputCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	ctx := &Context{Out: io.Discard}

	writer, closeOutput, err := openOutput(ctx, path)
	if err != nil {
		t.Fatalf("openOutput() error = %v", err)
	}
	if _, err := writer.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := closeOutput(); err != nil {
		t.Fatalf("closeOutput() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "hello\n" {
		t.Fatalf("file content = %q", data)
	}
}

func TestWriteOptionsLinkStyle(t *testing.T) {
	plainUI := ui.New(io.Discard, io.Discard, ui.ColorNever, false)

	opts := writeOptions(&Context{UI: plainUI}, io.Discard, "full")
	if opts.LinkStyle != export.LinkStyleFull {
		t.Fatalf("LinkStyle = %q, want full", opts.LinkStyle)
	}
	if opts.ColorEnabled || opts.Hyperlinks {
		t.Fatal("colors should stay off with color mode never")
	}

	opts = writeOptions(&Context{UI: plainUI}, io.Discard, "short")
	if opts.LinkStyle != export.LinkStyleShort {
		t.Fatalf("LinkStyle = %q, want short", opts.LinkStyle)
	}
}
