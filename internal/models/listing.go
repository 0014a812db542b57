package models

import (
	"fmt"
	"time"
)

// RawListing is one posting as extracted by a source adapter. Only Source
// and SourceID are guaranteed non-empty; everything else is free text.
type RawListing struct {
	Source       string `json:"source"`
	SourceID     string `json:"source_id"`
	URL          string `json:"url,omitempty"`
	Title        string `json:"title,omitempty"`
	Company      string `json:"company,omitempty"`
	CompanyURL   string `json:"company_url,omitempty"`
	Location     string `json:"location,omitempty"`
	Compensation string `json:"compensation,omitempty"`
	Hours        string `json:"hours,omitempty"`
	JobType      string `json:"job_type,omitempty"`
	DatePosted   string `json:"date_posted,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Listing is a normalized, persisted job listing. Pointer fields are absent
// when the source disclosed nothing; empty strings never overwrite stored
// text during reconciliation.
type Listing struct {
	ID int64 `db:"id" json:"id,omitempty"`

	Source    string `db:"source" json:"source"`
	SourceID  string `db:"source_id" json:"source_id"`
	SourceURL string `db:"source_url" json:"source_url,omitempty"`

	Title             string `db:"title" json:"title"`
	CompanyName       string `db:"company_name" json:"company_name"`
	CompanyNormalized string `db:"company_name_normalized" json:"company_name_normalized,omitempty"`
	CompanyURL        string `db:"company_url" json:"company_url,omitempty"`

	LocationRaw         string              `db:"location_raw" json:"location_raw,omitempty"`
	LocationType        LocationType        `db:"location_type" json:"location_type"`
	LocationRestriction LocationRestriction `db:"location_restriction" json:"location_restriction"`
	LocationState       string              `db:"location_state" json:"location_state,omitempty"`

	CompensationRaw  string           `db:"compensation_raw" json:"compensation_raw,omitempty"`
	CompensationType CompensationType `db:"compensation_type" json:"compensation_type"`
	CompensationMin  *float64         `db:"compensation_min" json:"compensation_min,omitempty"`
	CompensationMax  *float64         `db:"compensation_max" json:"compensation_max,omitempty"`

	HourlyRateMin      *float64 `db:"hourly_rate_min" json:"hourly_rate_min,omitempty"`
	HourlyRateMax      *float64 `db:"hourly_rate_max" json:"hourly_rate_max,omitempty"`
	MonthlyRetainerMin *float64 `db:"monthly_retainer_min" json:"monthly_retainer_min,omitempty"`
	MonthlyRetainerMax *float64 `db:"monthly_retainer_max" json:"monthly_retainer_max,omitempty"`

	HoursRaw        string   `db:"hours_raw" json:"hours_raw,omitempty"`
	HoursPerWeekMin *float64 `db:"hours_per_week_min" json:"hours_per_week_min,omitempty"`
	HoursPerWeekMax *float64 `db:"hours_per_week_max" json:"hours_per_week_max,omitempty"`

	JobType            string `db:"job_type" json:"job_type,omitempty"`
	ExperienceYearsMin *int   `db:"experience_years_min" json:"experience_years_min,omitempty"`

	FunctionCategory FunctionCategory `db:"function_category" json:"function_category"`
	SeniorityTier    SeniorityTier    `db:"seniority_tier" json:"seniority_tier"`

	DatePostedRaw string     `db:"date_posted_raw" json:"date_posted_raw,omitempty"`
	DatePosted    *time.Time `db:"date_posted" json:"date_posted,omitempty"`

	Description string `db:"description" json:"description,omitempty"`

	IsActive    bool      `db:"is_active" json:"is_active"`
	DateScraped time.Time `db:"date_scraped" json:"date_scraped"`
	LastSeen    time.Time `db:"last_seen" json:"last_seen"`
}

// CompensationDisplay renders the parsed compensation for humans. The
// normalized hourly/monthly figures are derived approximations and are
// deliberately not shown here.
func (l Listing) CompensationDisplay() string {
	switch l.CompensationType {
	case CompNotDisclosed, "":
		return "Not disclosed"
	case CompEquityOnly:
		return "Equity only"
	}
	if l.CompensationMin == nil && l.CompensationMax == nil {
		return "Not disclosed"
	}
	min, max := deref(l.CompensationMin), deref(l.CompensationMax)
	unit := ""
	switch l.CompensationType {
	case CompHourly:
		unit = "/hr"
	case CompMonthly:
		unit = "/mo"
	case CompAnnual:
		unit = "/yr"
	}
	if min == max || l.CompensationMax == nil {
		return fmt.Sprintf("$%.0f%s", min, unit)
	}
	return fmt.Sprintf("$%.0f-$%.0f%s", min, max, unit)
}

// HoursDisplay renders the weekly hours commitment for humans.
func (l Listing) HoursDisplay() string {
	if l.HoursPerWeekMin == nil {
		return "Not specified"
	}
	min := *l.HoursPerWeekMin
	if l.HoursPerWeekMax == nil || *l.HoursPerWeekMax == min {
		return fmt.Sprintf("%.0f hrs/week", min)
	}
	return fmt.Sprintf("%.0f-%.0f hrs/week", min, *l.HoursPerWeekMax)
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
