package classify

import (
	"regexp"
	"strings"

	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

// stateScanWindow caps how much of the description is scanned for state
// names; deep in the text they are more likely company boilerplate than a
// hiring restriction.
const stateScanWindow = 500

// abbrevPatterns is parallel to usStateAbbrevs. Word boundaries keep "in"
// inside "marketing" from matching, but standalone English words that
// double as abbreviations ("or", "me") still collide; that ambiguity is
// inherent to the heuristic.
var abbrevPatterns = buildAbbrevPatterns()

func buildAbbrevPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(usStateAbbrevs))
	for i, abbrev := range usStateAbbrevs {
		patterns[i] = regexp.MustCompile(`\b` + abbrev + `\b`)
	}
	return patterns
}

// Location resolves the location type and, for remote listings, the hiring
// restriction. The returned state code is non-empty only for
// RestrictionStateSpecific.
func Location(location, description string) (models.LocationType, models.LocationRestriction, string) {
	loc := strings.ToLower(location)
	desc := strings.ToLower(description)
	combined := loc + " " + desc

	var typ models.LocationType
	switch {
	case strings.Contains(loc, "remote"):
		typ = models.LocationRemote
	case strings.Contains(loc, "hybrid"):
		typ = models.LocationHybrid
	case containsAny(loc, majorCities):
		typ = models.LocationOnsite
	case containsAny(combined, []string{"fully remote", "remote position", "100% remote"}):
		typ = models.LocationRemote
	case strings.Contains(combined, "hybrid"):
		typ = models.LocationHybrid
	default:
		typ = models.LocationOnsite
	}

	if typ != models.LocationRemote {
		return typ, models.RestrictionCitySpecific, ""
	}

	if containsAny(combined, []string{"worldwide", "global", "anywhere"}) {
		return typ, models.RestrictionWorldwide, ""
	}
	if containsAny(combined, []string{"usa only", "us only", "united states only"}) {
		return typ, models.RestrictionUSAOnly, ""
	}

	descHead := desc
	if len(descHead) > stateScanWindow {
		descHead = descHead[:stateScanWindow]
	}
	for i, name := range usStates {
		if strings.Contains(loc, name) || strings.Contains(descHead, name) {
			return typ, models.RestrictionStateSpecific, strings.ToUpper(usStateAbbrevs[i])
		}
	}
	for i, pattern := range abbrevPatterns {
		if pattern.MatchString(loc) {
			return typ, models.RestrictionStateSpecific, strings.ToUpper(usStateAbbrevs[i])
		}
	}

	if containsAny(combined, timezoneTokens) {
		return typ, models.RestrictionTimezone, ""
	}
	// US-centric job boards rarely say so explicitly.
	return typ, models.RestrictionUSAOnly, ""
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
