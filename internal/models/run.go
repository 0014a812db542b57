package models

import "time"

// ScrapeRun records the outcome of one reconciliation batch for one source.
// It is created in the running state when the batch starts and finalized
// exactly once when the batch ends.
type ScrapeRun struct {
	ID                  int64      `db:"id" json:"id"`
	Source              string     `db:"source" json:"source"`
	StartedAt           time.Time  `db:"started_at" json:"started_at"`
	CompletedAt         *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	Status              RunStatus  `db:"status" json:"status"`
	ListingsFound       int        `db:"listings_found" json:"listings_found"`
	ListingsNew         int        `db:"listings_new" json:"listings_new"`
	ListingsUpdated     int        `db:"listings_updated" json:"listings_updated"`
	ListingsDeactivated int        `db:"listings_deactivated" json:"listings_deactivated"`
	ErrorCount          int        `db:"error_count" json:"error_count"`
	ErrorMessage        string     `db:"error_message" json:"error_message,omitempty"`
}

// Duration returns the wall-clock length of the run, or zero while it is
// still running.
func (r ScrapeRun) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// ScrapeOptions are the knobs a source adapter honors during a fetch.
type ScrapeOptions struct {
	Query    string
	MaxPages int
}
