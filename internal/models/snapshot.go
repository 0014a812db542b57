package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CountMap is a categorical count breakdown stored as a JSON text column.
type CountMap map[string]int

// Value implements driver.Valuer so a breakdown can be written as JSON.
func (m CountMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSON text columns.
func (m *CountMap) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = CountMap{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into CountMap", src)
	}
}

// ListingSnapshot is the daily count of active listings, partitioned by the
// classification dimensions. One row per snapshot date; recomputing a date
// replaces the row.
type ListingSnapshot struct {
	ID               int64     `db:"id" json:"id,omitempty"`
	SnapshotDate     time.Time `db:"snapshot_date" json:"snapshot_date"`
	Source           string    `db:"source" json:"source"`
	TotalActive      int       `db:"total_active" json:"total_active"`
	NewToday         int       `db:"new_today" json:"new_today"`
	RemovedToday     int       `db:"removed_today" json:"removed_today"`
	ByFunction       CountMap  `db:"by_function" json:"by_function"`
	BySeniority      CountMap  `db:"by_seniority" json:"by_seniority"`
	ByLocationType   CountMap  `db:"by_location_type" json:"by_location_type"`
	ByHoursBucket    CountMap  `db:"by_hours_bucket" json:"by_hours_bucket"`
	CompDisclosed    int       `db:"comp_disclosed_count" json:"comp_disclosed_count"`
	CompDisclosedPct float64   `db:"comp_disclosed_pct" json:"comp_disclosed_pct"`
}

// CompensationSnapshot holds per-function hourly-rate statistics for one
// snapshot date. Categories under the minimum sample size get no row.
type CompensationSnapshot struct {
	ID               int64            `db:"id" json:"id,omitempty"`
	SnapshotDate     time.Time        `db:"snapshot_date" json:"snapshot_date"`
	FunctionCategory FunctionCategory `db:"function_category" json:"function_category"`
	SampleSize       int              `db:"sample_size" json:"sample_size"`
	HourlyRateMinAvg float64          `db:"hourly_rate_min_avg" json:"hourly_rate_min_avg"`
	HourlyRateMaxAvg *float64         `db:"hourly_rate_max_avg" json:"hourly_rate_max_avg,omitempty"`
	HourlyRateMedian float64          `db:"hourly_rate_median" json:"hourly_rate_median"`
}

// FunctionCount pairs a function category with its active-listing count.
type FunctionCount struct {
	Function string `json:"function"`
	Count    int    `json:"count"`
}

// WeeklySummary compares the newest daily snapshot with the oldest one from
// the trailing seven days.
type WeeklySummary struct {
	WeekEnding       time.Time       `json:"week_ending"`
	TotalActive      int             `json:"total_active"`
	WoWChange        int             `json:"wow_change"`
	WoWChangePct     float64         `json:"wow_change_pct"`
	NewThisWeek      int             `json:"new_this_week"`
	RemovedThisWeek  int             `json:"removed_this_week"`
	TopFunctions     []FunctionCount `json:"top_functions"`
	CompDisclosedPct float64         `json:"comp_disclosed_pct"`
	ByLocationType   CountMap        `json:"by_location_type"`
}
