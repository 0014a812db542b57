package classify

import (
	"strings"

	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

// Seniority classifies a job title into a seniority tier, most specific
// tier first. The lowered title is padded with spaces so patterns like
// " ceo" match at either end of the title without firing inside longer
// words ("Price Analyst" must not read as c_level).
func Seniority(title string) models.SeniorityTier {
	padded := " " + strings.ToLower(title) + " "
	for _, entry := range seniorityPatterns {
		for _, pattern := range entry.Patterns {
			if strings.Contains(padded, pattern) {
				return entry.Tier
			}
		}
	}
	return models.SeniorityUnknown
}
