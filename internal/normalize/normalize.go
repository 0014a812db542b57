package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/romelikethecity/fractional-job-scraper/internal/classify"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

// Options tunes the derivation steps. Zero values fall back to the
// classify package defaults.
type Options struct {
	MonthlyThreshold    float64
	AnnualThreshold     float64
	DefaultHoursPerWeek float64
}

// Normalizer turns raw scraped listings into their persisted shape by
// running every field classifier and stamping scrape bookkeeping.
type Normalizer struct {
	comp         classify.CompensationOptions
	defaultHours float64
	now          func() time.Time
}

func New(opts Options) *Normalizer {
	comp := classify.DefaultCompensationOptions()
	if opts.MonthlyThreshold > 0 {
		comp.MonthlyThreshold = opts.MonthlyThreshold
	}
	if opts.AnnualThreshold > 0 {
		comp.AnnualThreshold = opts.AnnualThreshold
	}
	hours := classify.DefaultHoursPerWeek
	if opts.DefaultHoursPerWeek > 0 {
		hours = opts.DefaultHoursPerWeek
	}
	return &Normalizer{
		comp:         comp,
		defaultHours: hours,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Normalize derives every classified field for one raw listing. A listing
// without a source or source id cannot be reconciled and is rejected.
func (n *Normalizer) Normalize(raw models.RawListing) (models.Listing, error) {
	source := strings.TrimSpace(raw.Source)
	sourceID := strings.TrimSpace(raw.SourceID)
	if source == "" {
		return models.Listing{}, fmt.Errorf("listing %q has no source", raw.Title)
	}
	if sourceID == "" {
		return models.Listing{}, fmt.Errorf("%s listing %q has no source id", source, raw.Title)
	}

	title := strings.TrimSpace(raw.Title)
	company := strings.TrimSpace(raw.Company)
	location := strings.TrimSpace(raw.Location)

	// The structured hours field wins when it parses; otherwise scan the
	// title and description.
	hoursMin, hoursMax := classify.Hours(raw.Hours)
	if hoursMin == nil {
		hoursMin, hoursMax = classify.Hours(title + " " + raw.Description)
	}

	compType, compMin, compMax := classify.Compensation(raw.Compensation, n.comp)
	rates := classify.NormalizeCompensation(compType, compMin, compMax, hoursMin, hoursMax, n.defaultHours)

	locType, restriction, state := classify.Location(location, raw.Description)

	now := n.now()
	return models.Listing{
		Source:              source,
		SourceID:            sourceID,
		SourceURL:           strings.TrimSpace(raw.URL),
		Title:               title,
		CompanyName:         company,
		CompanyNormalized:   classify.CompanyKey(company),
		CompanyURL:          strings.TrimSpace(raw.CompanyURL),
		LocationRaw:         location,
		LocationType:        locType,
		LocationRestriction: restriction,
		LocationState:       state,
		CompensationRaw:     strings.TrimSpace(raw.Compensation),
		CompensationType:    compType,
		CompensationMin:     compMin,
		CompensationMax:     compMax,
		HourlyRateMin:       rates.HourlyMin,
		HourlyRateMax:       rates.HourlyMax,
		MonthlyRetainerMin:  rates.MonthlyMin,
		MonthlyRetainerMax:  rates.MonthlyMax,
		HoursRaw:            strings.TrimSpace(raw.Hours),
		HoursPerWeekMin:     hoursMin,
		HoursPerWeekMax:     hoursMax,
		JobType:             strings.TrimSpace(raw.JobType),
		ExperienceYearsMin:  classify.ExperienceYears(raw.Description),
		FunctionCategory:    classify.Function(title),
		SeniorityTier:       classify.Seniority(title),
		DatePostedRaw:       strings.TrimSpace(raw.DatePosted),
		DatePosted:          classify.PostedDate(raw.DatePosted, now),
		Description:         strings.TrimSpace(raw.Description),
		IsActive:            true,
		DateScraped:         now,
		LastSeen:            now,
	}, nil
}
