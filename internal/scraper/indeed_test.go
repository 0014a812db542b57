package scraper

import (
	"context"
	"strings"
	"testing"
	"time"
)

const indeedResultsHTML = `<!doctype html>
<html>
<body>
  <div class="mosaic">
    <div class="job_seen_beacon">
      <h2 class="jobTitle"><a class="jcs-JobTitle" href="/rc/clk?jk=abc123def456&amp;from=web"><span>Fractional CFO</span></a></h2>
      <span data-testid="company-name">Acme Capital</span>
      <div data-testid="text-location">Remote</div>
      <div class="salary-snippet-container">$150 - $200 an hour</div>
      <div class="job-snippet">Seeking a fractional CFO for 10-20 hours per week engagements.</div>
      <span class="date">Posted 3 days ago</span>
      <div class="metadata">Contract</div>
    </div>
    <a class="tapItem" href="/rc/clk?jk=0123456789ab">
      <h2 class="jobTitle"><span>Interim CMO</span></h2>
      <span class="companyName">Beta Brands</span>
      <div class="companyLocation">New York, NY (Remote)</div>
      <div class="job-snippet">Part-time marketing leadership.</div>
      <span class="date">Just posted</span>
    </a>
    <div data-jk="fedcba987654" class="result">
      <h2 class="jobTitle"><span>Fractional Controller</span></h2>
    </div>
    <div class="job_seen_beacon">
      <h2 class="jobTitle"><a class="jcs-JobTitle" href="/rc/clk?jk=abc123def456"><span>Fractional CFO</span></a></h2>
    </div>
  </div>
</body>
</html>`

func TestIndeedParsePage(t *testing.T) {
	indeed := NewIndeed(nil)
	doc := mustDoc(t, indeedResultsHTML)

	listings := indeed.parsePage(doc)
	if len(listings) != 3 {
		t.Fatalf("parsePage() len = %d, want 3 after dedupe: %+v", len(listings), listings)
	}

	first := listings[0]
	if first.Source != SiteIndeed || first.SourceID != "abc123def456" {
		t.Fatalf("first card identity = (%q, %q)", first.Source, first.SourceID)
	}
	if first.URL != "https://www.indeed.com/rc/clk?jk=abc123def456&from=web" {
		t.Fatalf("URL = %q", first.URL)
	}
	if first.Title != "Fractional CFO" || first.Company != "Acme Capital" {
		t.Fatalf("card = %+v", first)
	}
	if first.Location != "Remote" {
		t.Fatalf("Location = %q", first.Location)
	}
	if first.Compensation != "$150 - $200 an hour" {
		t.Fatalf("Compensation = %q", first.Compensation)
	}
	if !strings.Contains(first.Description, "10-20 hours per week") {
		t.Fatalf("Description = %q", first.Description)
	}
	if first.DatePosted != "Posted 3 days ago" {
		t.Fatalf("DatePosted = %q", first.DatePosted)
	}
	if first.JobType != "contract" {
		t.Fatalf("JobType = %q", first.JobType)
	}

	second := listings[1]
	if second.SourceID != "0123456789ab" || second.Title != "Interim CMO" {
		t.Fatalf("second card = %+v", second)
	}
	if second.Company != "Beta Brands" || second.Location != "New York, NY (Remote)" {
		t.Fatalf("second card = %+v", second)
	}
	if second.JobType != "" {
		t.Fatalf("JobType = %q, want empty", second.JobType)
	}

	third := listings[2]
	if third.SourceID != "fedcba987654" || third.Title != "Fractional Controller" {
		t.Fatalf("third card = %+v", third)
	}
	if third.URL != "" {
		t.Fatalf("URL = %q, want empty for linkless card", third.URL)
	}
}

func TestIndeedCardIDPrefersDataAttribute(t *testing.T) {
	doc := mustDoc(t, `<div data-jk="aa11bb22"></div>`)
	s := doc.Find("div[data-jk]")

	if got := indeedCardID(s, "/rc/clk?jk=ffee0011"); got != "aa11bb22" {
		t.Fatalf("indeedCardID() = %q, want data attribute to win", got)
	}

	doc = mustDoc(t, `<div class="plain"></div>`)
	s = doc.Find("div.plain")
	if got := indeedCardID(s, "/rc/clk?jk=ffee0011"); got != "ffee0011" {
		t.Fatalf("indeedCardID() = %q, want job key from href", got)
	}
	if got := indeedCardID(s, "/viewjob"); got != "" {
		t.Fatalf("indeedCardID() = %q, want empty", got)
	}
}

func TestBuildIndeedURL(t *testing.T) {
	url := buildIndeedURL("https://www.indeed.com", "fractional CFO", 20)
	if !containsAll(url, []string{
		"https://www.indeed.com/jobs?",
		"q=fractional+CFO",
		"sort=date",
		"start=20",
		"remotejob=",
	}) {
		t.Fatalf("unexpected indeed url: %s", url)
	}

	if first := buildIndeedURL("https://www.indeed.com", "interim CRO", 0); strings.Contains(first, "start=") {
		t.Fatalf("page one should not carry an offset: %s", first)
	}
}

func TestRandomDelayBounds(t *testing.T) {
	for i := 0; i < 50; i++ {
		d := randomDelay(2*time.Second, 4*time.Second)
		if d < 2*time.Second || d >= 4*time.Second {
			t.Fatalf("randomDelay() = %v, want [2s, 4s)", d)
		}
	}
	if d := randomDelay(5*time.Second, 2*time.Second); d != 5*time.Second {
		t.Fatalf("randomDelay() with inverted bounds = %v, want min", d)
	}
}

func TestSleepContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sleepContext(ctx, time.Hour); err == nil {
		t.Fatal("sleepContext() on cancelled context: want error")
	}
	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("sleepContext() error = %v", err)
	}
}

func containsAll(value string, parts []string) bool {
	for _, part := range parts {
		if !strings.Contains(value, part) {
			return false
		}
	}
	return true
}
