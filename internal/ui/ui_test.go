package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

func newPlainUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(&out, &errOut, ColorNever, false), &out, &errOut
}

func TestRunSummarySuccess(t *testing.T) {
	u, out, errOut := newPlainUI()
	started := time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC)
	completed := started.Add(90 * time.Second)
	u.RunSummary(&models.ScrapeRun{
		Source:              "indeed",
		StartedAt:           started,
		CompletedAt:         &completed,
		Status:              models.RunStatusSuccess,
		ListingsFound:       42,
		ListingsNew:         5,
		ListingsUpdated:     37,
		ListingsDeactivated: 3,
	})
	want := "indeed: 42 found, 5 new, 37 updated, 3 deactivated in 1m30s"
	if got := strings.TrimSpace(out.String()); got != want {
		t.Fatalf("RunSummary() = %q, want %q", got, want)
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected stderr output %q", errOut.String())
	}
}

func TestRunSummaryPartial(t *testing.T) {
	u, _, errOut := newPlainUI()
	u.RunSummary(&models.ScrapeRun{
		Source:        "fractionaljobs",
		Status:        models.RunStatusPartial,
		ListingsFound: 10,
		ErrorCount:    2,
	})
	if !strings.Contains(errOut.String(), "(2 errors)") {
		t.Fatalf("partial summary = %q", errOut.String())
	}
}

func TestRunSummaryFailed(t *testing.T) {
	u, _, errOut := newPlainUI()
	u.RunSummary(&models.ScrapeRun{
		Source:       "indeed",
		Status:       models.RunStatusFailed,
		ErrorMessage: "fetch failed: http 503",
	})
	if !strings.Contains(errOut.String(), "indeed: failed: fetch failed: http 503") {
		t.Fatalf("failed summary = %q", errOut.String())
	}
}

func TestBanner(t *testing.T) {
	u, out, _ := newPlainUI()
	u.Banner("daily scrape")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != strings.Repeat("=", 60) || lines[2] != lines[0] {
		t.Fatalf("unexpected rules %q %q", lines[0], lines[2])
	}
	if lines[1] != "daily scrape" {
		t.Fatalf("unexpected heading %q", lines[1])
	}
}

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"always":  ColorAlways,
		" NEVER ": ColorNever,
		"auto":    ColorAuto,
		"bogus":   ColorAuto,
		"":        ColorAuto,
	}
	for input, want := range cases {
		if got := NormalizeColorMode(input); got != want {
			t.Errorf("NormalizeColorMode(%q) = %q, want %q", input, got, want)
		}
	}
}
