package scraper

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
	"github.com/romelikethecity/fractional-job-scraper/internal/network"
	"golang.org/x/net/html"
)

// maxBodyBytes caps how much of a response gets parsed. Board pages are
// well under this; anything larger is not a job list.
const maxBodyBytes = 8 << 20

func fetchDocument(ctx context.Context, client *network.Client, target string, headers map[string]string) (*goquery.Document, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	applyHeaders(req, headers)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["accept"]; !ok {
		headers["accept"] = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	}
	if _, ok := headers["accept-language"]; !ok {
		headers["accept-language"] = "en-US,en;q=0.9"
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}

func cleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}

// cardText flattens an element into a single line with " | " between text
// nodes, so metadata rows read the way the board renders them:
// "Acme - Fractional CFO | 10 hrs | $200 / hr | Remote".
func cardText(s *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := cleanText(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return strings.Join(parts, " | ")
}

func absoluteURL(base string, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// stableID derives a deterministic identifier for a posting whose board
// exposes no usable id of its own. The same seed always yields the same
// id, so reconciliation still recognizes the listing across runs.
func stableID(seed string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}

// dedupeRaw drops repeats of the same posting. Boards repeat cards across
// pages and search terms; the first sighting wins.
func dedupeRaw(listings []models.RawListing) []models.RawListing {
	seen := map[string]struct{}{}
	out := make([]models.RawListing, 0, len(listings))
	for _, listing := range listings {
		key := listing.Source + "|" + listing.SourceID
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, listing)
	}
	return out
}
