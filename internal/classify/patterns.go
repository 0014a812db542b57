package classify

import "github.com/romelikethecity/fractional-job-scraper/internal/models"

// functionPatterns is evaluated top to bottom; the first category with a
// substring match wins, so finance outranks marketing for a title that
// mentions both.
var functionPatterns = []struct {
	Category models.FunctionCategory
	Patterns []string
}{
	{models.FunctionFinance, []string{
		"cfo", "chief financial", "controller", "fp&a", "finance director",
		"vp finance", "head of finance", "financial", "accounting",
	}},
	{models.FunctionMarketing, []string{
		"cmo", "chief marketing", "marketing", "brand", "growth marketing",
		"demand gen", "content", "vp marketing", "head of marketing",
	}},
	{models.FunctionSales, []string{
		"cro", "chief revenue", "sales", "revenue", "business development",
		"vp sales", "head of sales", "commercial", "go-to-market", "gtm",
	}},
	{models.FunctionProduct, []string{
		"cpo", "chief product", "product", "vp product", "head of product",
	}},
	{models.FunctionEngineering, []string{
		"cto", "chief technology", "engineering", "technical", "architect",
		"vp engineering", "head of engineering", "software",
	}},
	{models.FunctionOperations, []string{
		"coo", "chief operating", "operations", "ops", "vp operations",
		"head of operations",
	}},
	{models.FunctionPeople, []string{
		"chro", "chief people", "chief human", "hr", "human resources",
		"talent", "people ops", "vp people", "head of people", "head of hr",
	}},
	{models.FunctionData, []string{
		"cdo", "chief data", "data science", "analytics", "ml", "ai",
		"machine learning", "head of data", "vp data",
	}},
	{models.FunctionLegal, []string{
		"general counsel", "legal", "chief legal", "clo", "compliance",
	}},
}

// seniorityPatterns is ordered most specific first. Patterns that begin
// with a space rely on the padding added in Seniority to approximate a
// word boundary.
var seniorityPatterns = []struct {
	Tier     models.SeniorityTier
	Patterns []string
}{
	{models.SeniorityCLevel, []string{
		"chief", " ceo", " cfo", " cmo", " cro", " cto", " coo", " cpo",
		" chro", " cdo", " clo",
	}},
	{models.SeniorityEVP, []string{"evp", "executive vice president"}},
	{models.SenioritySVP, []string{
		"svp", "senior vice president", "sr vice president", "sr. vice president",
	}},
	{models.SeniorityVP, []string{" vp ", "vice president", " vp,", "vp of"}},
	{models.SeniorityDirector, []string{"director"}},
	{models.SeniorityHeadOf, []string{"head of", "head,"}},
}

// usStates and usStateAbbrevs are parallel: usStateAbbrevs[i] abbreviates
// usStates[i].
var usStates = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado",
	"connecticut", "delaware", "florida", "georgia", "hawaii", "idaho",
	"illinois", "indiana", "iowa", "kansas", "kentucky", "louisiana",
	"maine", "maryland", "massachusetts", "michigan", "minnesota",
	"mississippi", "missouri", "montana", "nebraska", "nevada",
	"new hampshire", "new jersey", "new mexico", "new york",
	"north carolina", "north dakota", "ohio", "oklahoma", "oregon",
	"pennsylvania", "rhode island", "south carolina", "south dakota",
	"tennessee", "texas", "utah", "vermont", "virginia", "washington",
	"west virginia", "wisconsin", "wyoming",
}

var usStateAbbrevs = []string{
	"al", "ak", "az", "ar", "ca", "co", "ct", "de", "fl", "ga", "hi", "id",
	"il", "in", "ia", "ks", "ky", "la", "me", "md", "ma", "mi", "mn", "ms",
	"mo", "mt", "ne", "nv", "nh", "nj", "nm", "ny", "nc", "nd", "oh", "ok",
	"or", "pa", "ri", "sc", "sd", "tn", "tx", "ut", "vt", "va", "wa", "wv",
	"wi", "wy",
}

// majorCities in the location field imply an onsite listing when no
// remote/hybrid token is present.
var majorCities = []string{
	"new york", "san francisco", "los angeles", "chicago", "boston",
	"seattle", "austin", "denver",
}

var timezoneTokens = []string{
	"pst", "est", "cst", "mst", " et ", " pt ", " ct ", " mt ",
	"eastern time", "pacific time",
}
