package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
	"github.com/romelikethecity/fractional-job-scraper/internal/network"
)

const (
	indeedBaseURL = "https://www.indeed.com"

	// indeedRemoteFilter is Indeed's opaque id for the remote-jobs facet.
	indeedRemoteFilter = "032b3046-06a3-4876-8dfd-474eb5e7ed11"

	indeedPageSize     = 10
	defaultIndeedPages = 5

	pageDelayMin  = 2 * time.Second
	pageDelayMax  = 4 * time.Second
	queryDelayMin = 3 * time.Second
	queryDelayMax = 6 * time.Second
)

// indeedSearchTerms are the queries that surface fractional roles. Indeed
// has no fractional category, so coverage comes from the title vocabulary.
var indeedSearchTerms = []string{
	"fractional CFO",
	"fractional CMO",
	"fractional CRO",
	"fractional CTO",
	"fractional COO",
	"fractional CPO",
	"fractional CHRO",
	"fractional executive",
	"fractional controller",
	"fractional VP",
	"fractional head of",
	"part-time CFO",
	"part-time CMO",
	"interim CFO",
	"interim CMO",
	"interim CRO",
}

var indeedJobKeyPattern = regexp.MustCompile(`jk=([a-f0-9]+)`)

// Indeed scrapes Indeed search results, one query at a time with paced
// pagination.
type Indeed struct {
	client  *network.Client
	baseURL string
}

func NewIndeed(client *network.Client) *Indeed {
	return &Indeed{client: client, baseURL: indeedBaseURL}
}

func (i *Indeed) Name() string {
	return SiteIndeed
}

func (i *Indeed) Fetch(ctx context.Context, opts models.ScrapeOptions) ([]models.RawListing, error) {
	queries := indeedSearchTerms
	if q := strings.TrimSpace(opts.Query); q != "" {
		queries = []string{q}
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = defaultIndeedPages
	}

	var all []models.RawListing
	for n, query := range queries {
		if n > 0 {
			if err := sleepContext(ctx, randomDelay(queryDelayMin, queryDelayMax)); err != nil {
				return dedupeRaw(all), err
			}
		}

		batch, err := i.search(ctx, query, maxPages)
		all = append(all, batch...)
		if err != nil {
			return dedupeRaw(all), err
		}
	}
	return dedupeRaw(all), nil
}

// search pages through one query until a page comes back empty or adds
// nothing new. Whatever was collected before a failure is returned with
// the error.
func (i *Indeed) search(ctx context.Context, query string, maxPages int) ([]models.RawListing, error) {
	var results []models.RawListing
	seen := map[string]struct{}{}

	for page := 0; page < maxPages; page++ {
		if page > 0 {
			if err := sleepContext(ctx, randomDelay(pageDelayMin, pageDelayMax)); err != nil {
				return results, err
			}
		}

		pageURL := buildIndeedURL(i.baseURL, query, page*indeedPageSize)
		doc, err := fetchDocument(ctx, i.client, pageURL, nil)
		if err != nil {
			return results, fmt.Errorf("%q page %d: %w", query, page+1, err)
		}

		batch := i.parsePage(doc)
		if len(batch) == 0 {
			break
		}

		fresh := 0
		for _, listing := range batch {
			if _, ok := seen[listing.SourceID]; ok {
				continue
			}
			seen[listing.SourceID] = struct{}{}
			results = append(results, listing)
			fresh++
		}
		if fresh == 0 {
			break
		}
	}
	return results, nil
}

func (i *Indeed) parsePage(doc *goquery.Document) []models.RawListing {
	var listings []models.RawListing
	doc.Find("div.job_seen_beacon, li.job_seen_beacon, a.tapItem, div[data-jk]").Each(func(_ int, s *goquery.Selection) {
		if listing, ok := i.parseCard(s); ok {
			listings = append(listings, listing)
		}
	})
	return dedupeRaw(listings)
}

func (i *Indeed) parseCard(s *goquery.Selection) (models.RawListing, bool) {
	link := s.Find("a.jcs-JobTitle, a.tapItem, h2.jobTitle a").First()
	href, _ := link.Attr("href")
	if href == "" && goquery.NodeName(s) == "a" {
		href, _ = s.Attr("href")
	}

	var sourceURL string
	if href != "" {
		sourceURL = absoluteURL(i.baseURL, href)
	}

	sourceID := indeedCardID(s, href)
	if sourceID == "" && sourceURL != "" {
		sourceID = stableID(sourceURL)
	}
	if sourceID == "" {
		return models.RawListing{}, false
	}

	title := cleanText(s.Find("h2.jobTitle span").First().Text())
	if title == "" {
		title = cleanText(s.Find("h2.jobTitle").First().Text())
	}
	company := cleanText(s.Find(`span.companyName, span[data-testid="company-name"]`).First().Text())
	location := cleanText(s.Find(`div.companyLocation, div[data-testid="text-location"]`).First().Text())
	salary := cleanText(s.Find(`[class*="salary"]`).First().Text())
	snippet := cleanText(s.Find(`div.job-snippet, td.snippet`).First().Text())
	posted := cleanText(s.Find("span.date, div.date").First().Text())

	var jobType string
	s.Find(`[class*="metadata"], [class*="attribute"]`).EachWithBreak(func(_ int, meta *goquery.Selection) bool {
		text := strings.ToLower(cleanText(meta.Text()))
		for _, kind := range []string{"full-time", "part-time", "contract", "temporary"} {
			if strings.Contains(text, kind) {
				jobType = kind
				return false
			}
		}
		return true
	})

	return models.RawListing{
		Source:       SiteIndeed,
		SourceID:     sourceID,
		URL:          sourceURL,
		Title:        title,
		Company:      company,
		Location:     location,
		Compensation: salary,
		JobType:      jobType,
		DatePosted:   posted,
		Description:  snippet,
	}, true
}

// indeedCardID pulls the job key from the card's data attribute, else from
// the jk parameter of its link.
func indeedCardID(s *goquery.Selection, href string) string {
	if jk, ok := s.Attr("data-jk"); ok && jk != "" {
		return jk
	}
	if m := indeedJobKeyPattern.FindStringSubmatch(href); m != nil {
		return m[1]
	}
	return ""
}

func buildIndeedURL(base string, query string, start int) string {
	values := url.Values{}
	values.Set("q", query)
	values.Set("sort", "date")
	values.Set("remotejob", indeedRemoteFilter)
	if start > 0 {
		values.Set("start", strconv.Itoa(start))
	}
	return fmt.Sprintf("%s/jobs?%s", base, values.Encode())
}

func randomDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
