package classify

import (
	"regexp"
	"strings"
)

// companySuffixes is checked in order against the end of the lowered name;
// a name can shed several suffixes in one pass ("acme co., inc." ends up
// as "acme").
var companySuffixes = []string{
	", inc.", ", inc", " inc.", " inc",
	", llc", " llc",
	", ltd.", ", ltd", " ltd.", " ltd",
	", corp.", ", corp", " corp.", " corp",
	" corporation",
	", co.", ", co", " co.",
	" company",
}

var (
	companyPunctPattern = regexp.MustCompile(`[^\w\s]`)
	companySpacePattern = regexp.MustCompile(`\s+`)
)

// CompanyKey reduces a company name to a matching key: lowercased, legal
// suffixes stripped, punctuation removed, whitespace collapsed. The
// display name is kept verbatim elsewhere.
func CompanyKey(name string) string {
	if name == "" {
		return ""
	}
	key := strings.TrimSpace(strings.ToLower(name))
	for _, suffix := range companySuffixes {
		key = strings.TrimSuffix(key, suffix)
	}
	key = companyPunctPattern.ReplaceAllString(key, "")
	key = companySpacePattern.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}
