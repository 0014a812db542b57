package scraper

import (
	"strings"

	"github.com/romelikethecity/fractional-job-scraper/internal/network"
)

const (
	SiteFractionalJobs = "fractionaljobs"
	SiteIndeed         = "indeed"
)

// Registry builds one scraper per supported board, each on its own client
// so cookies and proxy bans never bleed between sites.
func Registry(opts network.Options) (map[string]Scraper, error) {
	fractionalJobs, err := network.NewClient(opts)
	if err != nil {
		return nil, err
	}
	indeed, err := network.NewClient(opts)
	if err != nil {
		return nil, err
	}

	return map[string]Scraper{
		SiteFractionalJobs: NewFractionalJobs(fractionalJobs),
		SiteIndeed:         NewIndeed(indeed),
	}, nil
}

// Sites lists the supported board names in stable order.
func Sites() []string {
	return []string{SiteFractionalJobs, SiteIndeed}
}

// NormalizeSources lowercases, trims, and de-prefixes user-supplied source
// names so "WWW.Indeed" and "indeed" select the same scraper.
func NormalizeSources(sources []string) []string {
	out := make([]string, 0, len(sources))
	for _, source := range sources {
		source = strings.ToLower(strings.TrimSpace(source))
		if source == "" {
			continue
		}
		source = strings.TrimPrefix(source, "www.")
		source = strings.TrimSuffix(source, ".io")
		source = strings.TrimSuffix(source, ".com")
		out = append(out, source)
	}
	return out
}
