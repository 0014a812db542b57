package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Weekly-hours sanity window for single-number matches. Ranges are taken
// at face value; a lone "120 hrs" is almost never hours per week.
const (
	hoursSanityMin = 1
	hoursSanityMax = 50
)

// hoursPatterns runs most specific first. A rejected single-number match
// does not stop the scan; later patterns still get a chance.
var hoursPatterns = []*regexp.Regexp{
	// "10-20 hours per week", "10 to 20 hrs/week"
	regexp.MustCompile(`(\d+)\s*[-–—to]+\s*(\d+)\s*(?:hrs?|hours?)\s*(?:per|/|a)?\s*week`),
	// "10 hours per week", "10 hrs/week"
	regexp.MustCompile(`(\d+)\s*(?:hrs?|hours?)\s*(?:per|/|a)?\s*week`),
	// "part-time (10 hours)"
	regexp.MustCompile(`part[\s-]?time\s*\((\d+)\s*(?:hrs?|hours?)?\)`),
	// "up to 20 hours"
	regexp.MustCompile(`up\s+to\s+(\d+)\s*(?:hrs?|hours?)`),
	// "approximately 15 hours"
	regexp.MustCompile(`approximately\s+(\d+)\s*(?:hrs?|hours?)`),
	// "15-20 hrs"
	regexp.MustCompile(`(\d+)\s*[-–—to]+\s*(\d+)\s*hrs?`),
	// "10 hrs" standalone
	regexp.MustCompile(`\b(\d+)\s*hrs?\b`),
}

// Hours extracts a weekly-hours range from free text. A range match yields
// (min, max); a single number yields (n, n) only when it passes the sanity
// window. Both returns are nil when nothing qualifies.
func Hours(text string) (*float64, *float64) {
	if text == "" {
		return nil, nil
	}
	lower := strings.ToLower(text)
	for _, pattern := range hoursPatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if len(m) == 3 && m[2] != "" {
			min, errMin := strconv.ParseFloat(m[1], 64)
			max, errMax := strconv.ParseFloat(m[2], 64)
			if errMin == nil && errMax == nil {
				return &min, &max
			}
			continue
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err == nil && n >= hoursSanityMin && n <= hoursSanityMax {
			return &n, &n
		}
	}
	return nil, nil
}

// Bucket labels for the weekly-hours dimension of daily snapshots.
const (
	BucketNotSpecified = "not_specified"
	Bucket1To10        = "1-10"
	Bucket10To20       = "10-20"
	Bucket20To30       = "20-30"
	Bucket30To40       = "30-40"
)

// HoursBucket maps an hours range onto its snapshot bucket using the
// midpoint of the range.
func HoursBucket(min, max *float64) string {
	lo, hi := ptrVal(min), ptrVal(max)
	if lo == 0 && hi == 0 {
		return BucketNotSpecified
	}
	avg := lo
	if hi != 0 {
		avg = (lo + hi) / 2
	}
	switch {
	case avg <= 10:
		return Bucket1To10
	case avg <= 20:
		return Bucket10To20
	case avg <= 30:
		return Bucket20To30
	default:
		return Bucket30To40
	}
}

func ptrVal(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
