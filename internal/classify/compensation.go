package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

// Conversion constants for canonicalizing pay across structures. The annual
// divisor is the full-time-equivalent year, not the fractional hours.
const (
	WeeksPerMonth   = 4.33
	HoursPerYearFTE = 2080

	DefaultHoursPerWeek     = 15.0
	DefaultMonthlyThreshold = 1000.0
	DefaultAnnualThreshold  = 50000.0
)

// CompensationOptions tune magnitude-based type inference for pay strings
// that carry no hour/month/year keyword: amounts below MonthlyThreshold
// read as hourly, below AnnualThreshold as monthly, anything larger as
// annual. Boundary amounts are a best-effort guess either way.
type CompensationOptions struct {
	MonthlyThreshold float64
	AnnualThreshold  float64
}

// DefaultCompensationOptions returns the stock inference thresholds.
func DefaultCompensationOptions() CompensationOptions {
	return CompensationOptions{
		MonthlyThreshold: DefaultMonthlyThreshold,
		AnnualThreshold:  DefaultAnnualThreshold,
	}
}

var (
	compStripPattern  = regexp.MustCompile(`[^0-9\s\-–—.kyKY]`)
	compNumberPattern = regexp.MustCompile(`[0-9.]+[kK]?`)
)

var (
	hourlyKeywords  = []string{"hour", "hr", "/hr", "hourly"}
	monthlyKeywords = []string{"month", "mo", "/mo", "monthly"}
	annualKeywords  = []string{"year", "yr", "/yr", "annual", "salary"}
)

// Compensation parses a raw pay string into a type and numeric range.
// Currency punctuation is stripped, up to two numeric tokens are taken
// (a k suffix multiplies by 1000), and the type comes from keywords or,
// failing that, from magnitude. Text with no numeric token parses as
// (CompNotDisclosed, nil, nil).
func Compensation(text string, opts CompensationOptions) (models.CompensationType, *float64, *float64) {
	if text == "" {
		return models.CompNotDisclosed, nil, nil
	}

	lower := strings.ReplaceAll(strings.ToLower(text), ",", "")
	cleaned := compStripPattern.ReplaceAllString(text, "")
	tokens := compNumberPattern.FindAllString(cleaned, -1)
	if len(tokens) == 0 {
		return models.CompNotDisclosed, nil, nil
	}

	min, err := parseAmount(tokens[0])
	if err != nil {
		return models.CompNotDisclosed, nil, nil
	}
	max := min
	if len(tokens) >= 2 {
		max, err = parseAmount(tokens[1])
		if err != nil {
			return models.CompNotDisclosed, nil, nil
		}
	}

	var typ models.CompensationType
	switch {
	case containsAny(lower, hourlyKeywords):
		typ = models.CompHourly
	case containsAny(lower, monthlyKeywords):
		typ = models.CompMonthly
	case containsAny(lower, annualKeywords):
		typ = models.CompAnnual
	case max > 0 && max < opts.MonthlyThreshold:
		typ = models.CompHourly
	case max > 0 && max < opts.AnnualThreshold:
		typ = models.CompMonthly
	default:
		typ = models.CompAnnual
	}

	return typ, &min, &max
}

func parseAmount(token string) (float64, error) {
	token = strings.ToLower(token)
	if strings.Contains(token, "k") {
		n, err := strconv.ParseFloat(strings.ReplaceAll(token, "k", ""), 64)
		if err != nil {
			return 0, err
		}
		return n * 1000, nil
	}
	return strconv.ParseFloat(token, 64)
}

// Rates holds the canonical comparison figures derived from one parsed pay
// range: an hourly rate and a monthly retainer. Both are approximations
// for cross-listing comparability, not contractual values.
type Rates struct {
	HourlyMin  *float64
	HourlyMax  *float64
	MonthlyMin *float64
	MonthlyMax *float64
}

// NormalizeCompensation converts a parsed pay range into hourly and
// monthly equivalents. The assumed weekly hours are the midpoint of the
// extracted range, one present bound, or defaultHours. Annual pay converts
// through the FTE year and twelve months regardless of listed hours.
func NormalizeCompensation(typ models.CompensationType, min, max, hoursMin, hoursMax *float64, defaultHours float64) Rates {
	var rates Rates
	if ptrVal(min) == 0 && ptrVal(max) == 0 {
		return rates
	}

	hoursAvg := defaultHours
	switch {
	case ptrVal(hoursMin) != 0 && ptrVal(hoursMax) != 0:
		hoursAvg = (*hoursMin + *hoursMax) / 2
	case ptrVal(hoursMin) != 0:
		hoursAvg = *hoursMin
	case ptrVal(hoursMax) != 0:
		hoursAvg = *hoursMax
	}

	switch typ {
	case models.CompHourly:
		rates.HourlyMin, rates.HourlyMax = min, max
		if ptrVal(min) != 0 {
			rates.MonthlyMin = fptr(*min * hoursAvg * WeeksPerMonth)
		}
		if ptrVal(max) != 0 {
			rates.MonthlyMax = fptr(*max * hoursAvg * WeeksPerMonth)
		}
	case models.CompMonthly:
		rates.MonthlyMin, rates.MonthlyMax = min, max
		if hoursAvg > 0 {
			if ptrVal(min) != 0 {
				rates.HourlyMin = fptr(*min / (hoursAvg * WeeksPerMonth))
			}
			if ptrVal(max) != 0 {
				rates.HourlyMax = fptr(*max / (hoursAvg * WeeksPerMonth))
			}
		}
	case models.CompAnnual:
		if ptrVal(min) != 0 {
			rates.HourlyMin = fptr(*min / HoursPerYearFTE)
			rates.MonthlyMin = fptr(*min / 12)
		}
		if ptrVal(max) != 0 {
			rates.HourlyMax = fptr(*max / HoursPerYearFTE)
			rates.MonthlyMax = fptr(*max / 12)
		}
	}

	return rates
}

func fptr(v float64) *float64 {
	return &v
}
