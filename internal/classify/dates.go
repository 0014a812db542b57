package classify

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	daysAgoPattern  = regexp.MustCompile(`(\d+)\s*days?\s*ago`)
	weeksAgoPattern = regexp.MustCompile(`(\d+)\s*weeks?\s*ago`)
	hoursAgoPattern = regexp.MustCompile(`(\d+)\s*hours?\s*ago`)
)

var postedDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// PostedDate resolves a relative or absolute posting-date string against
// now. Everything is UTC; "N hours ago" collapses to now because
// hour-level precision is not modeled. Unrecognized text returns nil.
func PostedDate(text string, now time.Time) *time.Time {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(strings.TrimSpace(text))
	now = now.UTC()

	if strings.Contains(lower, "just") || strings.Contains(lower, "today") {
		return &now
	}
	if strings.Contains(lower, "yesterday") {
		t := now.AddDate(0, 0, -1)
		return &t
	}
	if m := daysAgoPattern.FindStringSubmatch(lower); m != nil {
		days, _ := strconv.Atoi(m[1])
		t := now.AddDate(0, 0, -days)
		return &t
	}
	if m := weeksAgoPattern.FindStringSubmatch(lower); m != nil {
		weeks, _ := strconv.Atoi(m[1])
		t := now.AddDate(0, 0, -7*weeks)
		return &t
	}
	if hoursAgoPattern.MatchString(lower) {
		return &now
	}

	trimmed := strings.TrimSpace(text)
	for _, layout := range postedDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}
