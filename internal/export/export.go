package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/muesli/termenv"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

// ParseFormat validates a format name; "markdown" is accepted as an alias
// for md. An empty value means table.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatCSV):
		return FormatCSV, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown), "markdown":
		return FormatMarkdown, nil
	case string(FormatTSV):
		return FormatTSV, nil
	default:
		return "", fmt.Errorf("unknown format %q", value)
	}
}

// DetectFormat infers a format from an output path's extension, falling
// back to table.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".tsv":
		return FormatTSV
	case ".json":
		return FormatJSON
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatTable
	}
}

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

func WriteListings(w io.Writer, listings []models.Listing, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, listings)
	case FormatCSV:
		return writeListingsCSV(w, listings, ',')
	case FormatTSV:
		return writeListingsCSV(w, listings, '\t')
	case FormatMarkdown:
		return writeListingsMarkdown(w, listings)
	default:
		return writeListingsTable(w, listings, opts)
	}
}

func WriteRuns(w io.Writer, runs []models.ScrapeRun, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, runs)
	case FormatCSV:
		return writeRunsCSV(w, runs, ',')
	case FormatTSV:
		return writeRunsCSV(w, runs, '\t')
	default:
		return writeRunsTable(w, runs)
	}
}

func WriteSnapshot(w io.Writer, snap *models.ListingSnapshot, comp []models.CompensationSnapshot, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, snapshotReport{Snapshot: snap, Compensation: comp})
	}
	return writeSnapshotText(w, snap, comp)
}

func WriteWeekly(w io.Writer, summary *models.WeeklySummary, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, summary)
	}
	return writeWeeklyMarkdown(w, summary)
}

type snapshotReport struct {
	Snapshot     *models.ListingSnapshot       `json:"snapshot"`
	Compensation []models.CompensationSnapshot `json:"compensation,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeListingsCSV(w io.Writer, listings []models.Listing, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(listingHeader()); err != nil {
		return err
	}
	for i := range listings {
		if err := writer.Write(listingRow(&listings[i])); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Column order is the published dataset layout. Append new columns at the
// end, never reorder.
func listingHeader() []string {
	return []string{
		"id",
		"source",
		"title",
		"company_name",
		"location_raw",
		"location_type",
		"location_restriction",
		"compensation_type",
		"compensation_min",
		"compensation_max",
		"hourly_rate_min",
		"hourly_rate_max",
		"hours_per_week_min",
		"hours_per_week_max",
		"function_category",
		"seniority_tier",
		"date_posted",
		"source_url",
	}
}

func listingRow(l *models.Listing) []string {
	return []string{
		strconv.FormatInt(l.ID, 10),
		l.Source,
		l.Title,
		l.CompanyName,
		l.LocationRaw,
		string(l.LocationType),
		string(l.LocationRestriction),
		string(l.CompensationType),
		floatString(l.CompensationMin),
		floatString(l.CompensationMax),
		floatString(l.HourlyRateMin),
		floatString(l.HourlyRateMax),
		floatString(l.HoursPerWeekMin),
		floatString(l.HoursPerWeekMax),
		string(l.FunctionCategory),
		string(l.SeniorityTier),
		dateString(l.DatePosted),
		l.SourceURL,
	}
}

func floatString(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func writeListingsTable(w io.Writer, listings []models.Listing, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(listingTableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for i := range listings {
		fmt.Fprintln(tw, strings.Join(listingTableRow(&listings[i], output, opts), "\t"))
	}
	return tw.Flush()
}

func listingTableHeader() []string {
	return []string{
		"source",
		"title",
		"company",
		"comp",
		"hours",
		"url",
	}
}

func listingTableRow(l *models.Listing, output *termenv.Output, opts WriteOptions) []string {
	const linkColor = "#87CEEB"

	url := safe(l.SourceURL)
	displayURL := "-"
	if url != "" {
		displayURL = url
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(url)
		}
		if opts.ColorEnabled {
			displayURL = output.String(displayURL).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			displayURL = hyperlink(url, displayURL)
		}
	}
	return []string{
		safe(l.Source),
		safe(l.Title),
		safe(l.CompanyName),
		l.CompensationDisplay(),
		l.HoursDisplay(),
		displayURL,
	}
}

func writeListingsMarkdown(w io.Writer, listings []models.Listing) error {
	if len(listings) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for i := range listings {
		l := &listings[i]
		urlLine := "  URL: -"
		if url := safe(l.SourceURL); url != "" {
			urlLine = fmt.Sprintf("  URL: [Open listing](<%s>)", url)
		}
		location := safe(l.LocationRaw)
		if location == "" {
			location = string(l.LocationType)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(l.Title), safe(l.CompanyName)),
			fmt.Sprintf("  Source: %s", safe(l.Source)),
			fmt.Sprintf("  Location: %s", location),
			fmt.Sprintf("  Function: %s / %s", l.FunctionCategory, l.SeniorityTier),
			fmt.Sprintf("  Comp: %s", l.CompensationDisplay()),
			fmt.Sprintf("  Hours: %s", l.HoursDisplay()),
			urlLine,
		}
		if l.DatePosted != nil {
			lines = append(lines, fmt.Sprintf("  Posted: %s", l.DatePosted.Format("2006-01-02")))
		} else if l.DatePostedRaw != "" {
			lines = append(lines, fmt.Sprintf("  Posted (raw): %s", safe(l.DatePostedRaw)))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeRunsCSV(w io.Writer, runs []models.ScrapeRun, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	header := []string{
		"id", "source", "started_at", "completed_at", "status",
		"listings_found", "listings_new", "listings_updated",
		"listings_deactivated", "error_count", "error_message",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, run := range runs {
		completed := ""
		if run.CompletedAt != nil {
			completed = run.CompletedAt.UTC().Format(time.RFC3339)
		}
		row := []string{
			strconv.FormatInt(run.ID, 10),
			run.Source,
			run.StartedAt.UTC().Format(time.RFC3339),
			completed,
			string(run.Status),
			strconv.Itoa(run.ListingsFound),
			strconv.Itoa(run.ListingsNew),
			strconv.Itoa(run.ListingsUpdated),
			strconv.Itoa(run.ListingsDeactivated),
			strconv.Itoa(run.ErrorCount),
			run.ErrorMessage,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeRunsTable(w io.Writer, runs []models.ScrapeRun) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := []string{"id", "source", "started", "status", "found", "new", "updated", "removed", "errors", "took"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, run := range runs {
		took := "-"
		if d := run.Duration(); d > 0 {
			took = d.Round(time.Second).String()
		}
		row := []string{
			strconv.FormatInt(run.ID, 10),
			run.Source,
			run.StartedAt.UTC().Format("2006-01-02 15:04"),
			string(run.Status),
			strconv.Itoa(run.ListingsFound),
			strconv.Itoa(run.ListingsNew),
			strconv.Itoa(run.ListingsUpdated),
			strconv.Itoa(run.ListingsDeactivated),
			strconv.Itoa(run.ErrorCount),
			took,
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeSnapshotText(w io.Writer, snap *models.ListingSnapshot, comp []models.CompensationSnapshot) error {
	fmt.Fprintf(w, "Snapshot %s (%s)\n", snap.SnapshotDate.Format("2006-01-02"), snap.Source)
	fmt.Fprintf(w, "  Active: %d (new today %d, removed today %d)\n", snap.TotalActive, snap.NewToday, snap.RemovedToday)
	fmt.Fprintf(w, "  Comp disclosed: %d (%.1f%%)\n", snap.CompDisclosed, snap.CompDisclosedPct)
	writeBreakdown(w, "By function", snap.ByFunction)
	writeBreakdown(w, "By seniority", snap.BySeniority)
	writeBreakdown(w, "By location type", snap.ByLocationType)
	writeBreakdown(w, "By hours bucket", snap.ByHoursBucket)
	if len(comp) == 0 {
		return nil
	}
	fmt.Fprintln(w, "  Hourly rates:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "    function\tsample\tavg min\tavg max\tmedian")
	for _, row := range comp {
		avgMax := "-"
		if row.HourlyRateMaxAvg != nil {
			avgMax = fmt.Sprintf("$%.0f", *row.HourlyRateMaxAvg)
		}
		fmt.Fprintf(tw, "    %s\t%d\t$%.0f\t%s\t$%.0f\n",
			row.FunctionCategory, row.SampleSize, row.HourlyRateMinAvg, avgMax, row.HourlyRateMedian)
	}
	return tw.Flush()
}

func writeBreakdown(w io.Writer, label string, counts models.CountMap) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:", label)
	for i, key := range rankedKeys(counts) {
		if i > 0 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprintf(w, " %s %d", key, counts[key])
	}
	fmt.Fprintln(w)
}

// rankedKeys orders a breakdown by count, ties broken by name.
func rankedKeys(counts models.CountMap) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func writeWeeklyMarkdown(w io.Writer, summary *models.WeeklySummary) error {
	if summary == nil {
		_, err := fmt.Fprintln(w, "No snapshots yet.")
		return err
	}
	lines := []string{
		fmt.Sprintf("**Week ending %s**", summary.WeekEnding.Format("2006-01-02")),
		fmt.Sprintf("- Active listings: %d (%+d WoW, %+.1f%%)", summary.TotalActive, summary.WoWChange, summary.WoWChangePct),
		fmt.Sprintf("- New this week: %d", summary.NewThisWeek),
		fmt.Sprintf("- Removed this week: %d", summary.RemovedThisWeek),
		fmt.Sprintf("- Comp disclosed: %.1f%%", summary.CompDisclosedPct),
	}
	if len(summary.TopFunctions) > 0 {
		parts := make([]string, 0, len(summary.TopFunctions))
		for _, fc := range summary.TopFunctions {
			parts = append(parts, fmt.Sprintf("%s (%d)", fc.Function, fc.Count))
		}
		lines = append(lines, "- Top functions: "+strings.Join(parts, ", "))
	}
	if len(summary.ByLocationType) > 0 {
		parts := make([]string, 0, len(summary.ByLocationType))
		for _, key := range rankedKeys(summary.ByLocationType) {
			parts = append(parts, fmt.Sprintf("%s %d", key, summary.ByLocationType[key]))
		}
		lines = append(lines, "- By location: "+strings.Join(parts, ", "))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
