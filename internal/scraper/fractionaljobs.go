package scraper

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
	"github.com/romelikethecity/fractional-job-scraper/internal/network"
)

const fractionalJobsBaseURL = "https://www.fractionaljobs.io"

var (
	// Card metadata renders as "10 hrs | $2.5K - $3K / mo. | Remote" or
	// "10 - 15 hrs | $200 / hr | Remote (USA only)".
	fjMetaPattern    = regexp.MustCompile(`(\d+(?:\s*-\s*\d+)?\s*hrs?)[^|]*\|([^|]+)\|([^|]+)`)
	fjHoursPattern   = regexp.MustCompile(`\d+(?:\s*-\s*\d+)?\s*hrs?`)
	fjCompPattern    = regexp.MustCompile(`\$[\d,.]+[kK]?\s*(?:-\s*\$[\d,.]+[kK]?)?\s*(?:/\s*(?:hr|mo|month|hour))?`)
	fjRemotePattern  = regexp.MustCompile(`(?i)remote[^|]*`)
	fjDatePattern    = regexp.MustCompile(`(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d+,?\s*\d*`)
	fjDaysAgoPattern = regexp.MustCompile(`(?i)added\s+(\d+)\s*days?\s*ago`)
	fjSlugPattern    = regexp.MustCompile(`/([a-z0-9-]+)(?:\?|$)`)
)

// FractionalJobs scrapes the fractionaljobs.io board. The whole board
// renders on one page, so pagination options do not apply.
type FractionalJobs struct {
	client  *network.Client
	baseURL string
}

func NewFractionalJobs(client *network.Client) *FractionalJobs {
	return &FractionalJobs{client: client, baseURL: fractionalJobsBaseURL}
}

func (f *FractionalJobs) Name() string {
	return SiteFractionalJobs
}

func (f *FractionalJobs) Fetch(ctx context.Context, _ models.ScrapeOptions) ([]models.RawListing, error) {
	doc, err := fetchDocument(ctx, f.client, f.baseURL, nil)
	if err != nil {
		return nil, err
	}
	return dedupeRaw(f.parseBoard(doc)), nil
}

func (f *FractionalJobs) parseBoard(doc *goquery.Document) []models.RawListing {
	var listings []models.RawListing
	doc.Find("div, article, li").Each(func(_ int, s *goquery.Selection) {
		if !looksLikeJobCard(s) {
			return
		}
		if listing, ok := f.parseCard(s); ok {
			listings = append(listings, listing)
		}
	})
	return listings
}

// looksLikeJobCard gates candidate containers: a card-shaped class or tag
// whose text mentions an hours commitment plus pay or a remote marker.
func looksLikeJobCard(s *goquery.Selection) bool {
	if !isCardContainer(s) {
		return false
	}
	text := cardText(s)
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "hrs") {
		return false
	}
	return strings.Contains(lower, "remote") || strings.Contains(text, "$")
}

func isCardContainer(s *goquery.Selection) bool {
	if goquery.NodeName(s) == "article" {
		return true
	}
	class, _ := s.Attr("class")
	class = strings.ToLower(class)
	for _, marker := range []string{"job", "listing", "card"} {
		if strings.Contains(class, marker) {
			return true
		}
	}
	return false
}

func (f *FractionalJobs) parseCard(s *goquery.Selection) (models.RawListing, bool) {
	text := cardText(s)

	// The heading flattens to "Company - Title | 10 hrs | ...", so the
	// title is whatever sits between the first dash and the metadata row.
	var title string
	if parts := strings.SplitN(text, " - ", 2); len(parts) == 2 {
		title = parts[1]
	}
	title = strings.TrimSpace(strings.SplitN(title, " | ", 2)[0])
	if idx := strings.Index(title, "("); idx >= 0 {
		title = strings.TrimSpace(title[:idx])
	}
	if title == "" {
		return models.RawListing{}, false
	}

	company := cleanText(s.Find("h3, strong").First().Text())
	if company == "" {
		company = "Unknown"
	}
	companyURL, _ := s.Find(`a[href^="https://"], a[href^="http://"]`).First().Attr("href")

	hoursRaw, compRaw, locationRaw := parseFractionalMeta(text)

	dateAdded := strings.TrimSpace(fjDatePattern.FindString(text))
	if dateAdded == "" {
		if m := fjDaysAgoPattern.FindStringSubmatch(text); m != nil {
			dateAdded = m[1] + " days ago"
		}
	}

	var sourceURL string
	s.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.Contains(href, "/jobs/") || strings.Contains(href, "fractionaljobs.io/") {
			sourceURL = absoluteURL(f.baseURL, href)
			return false
		}
		return true
	})

	var sourceID string
	if sourceURL != "" {
		if m := fjSlugPattern.FindStringSubmatch(sourceURL); m != nil {
			sourceID = m[1]
		}
	}
	if sourceID == "" {
		seed := sourceURL
		if seed == "" {
			seed = f.baseURL + "#" + company + "|" + title
		}
		sourceID = stableID(seed)
	}
	if sourceURL == "" {
		sourceURL = f.baseURL
	}

	return models.RawListing{
		Source:       SiteFractionalJobs,
		SourceID:     sourceID,
		URL:          sourceURL,
		Title:        title,
		Company:      company,
		CompanyURL:   companyURL,
		Location:     locationRaw,
		Compensation: compRaw,
		Hours:        hoursRaw,
		DatePosted:   dateAdded,
	}, true
}

// parseFractionalMeta splits the metadata row into its hours, pay, and
// location parts, falling back to loose scans when the row is not the
// usual three pipe-separated fields.
func parseFractionalMeta(text string) (hours, comp, location string) {
	if m := fjMetaPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), strings.TrimSpace(m[3])
	}

	hours = strings.TrimSpace(fjHoursPattern.FindString(text))
	comp = strings.TrimSpace(fjCompPattern.FindString(text))
	if strings.Contains(strings.ToLower(text), "remote") {
		location = "Remote"
		if m := fjRemotePattern.FindString(text); m != "" {
			location = strings.TrimSpace(m)
		}
	}
	return hours, comp, location
}
