package classify

import (
	"strings"

	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

// Function classifies a job title into a business function. Categories are
// checked in table order and the first substring match wins; titles that
// match nothing fall back to FunctionOther.
func Function(title string) models.FunctionCategory {
	lower := strings.ToLower(title)
	for _, entry := range functionPatterns {
		for _, pattern := range entry.Patterns {
			if strings.Contains(lower, pattern) {
				return entry.Category
			}
		}
	}
	return models.FunctionOther
}
