package classify

import (
	"regexp"
	"strconv"
	"strings"
)

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)\s*(?:of)?\s*experience`),
	regexp.MustCompile(`minimum\s*(?:of)?\s*(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`at\s*least\s*(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(\d+)\s*(?:years?|yrs?)\s*(?:of)?\s*(?:relevant|related|professional)`),
}

// ExperienceYears pulls a minimum years-of-experience requirement out of a
// description. Figures above 50 are treated as noise.
func ExperienceYears(text string) *int {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	for _, pattern := range experiencePatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err == nil && years >= 1 && years <= 50 {
			return &years
		}
	}
	return nil
}
