package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

// upsertListing merges on the (source, source_id) natural key in one
// statement, so concurrent runs cannot interleave a read-modify-write.
// Free-text columns keep their stored value when the incoming one is
// empty, numeric and date columns when it is NULL; classification columns
// always follow the newest scrape, as do last_seen and is_active.
// date_scraped is set on insert only and marks first sighting.
const upsertListing = `
INSERT INTO listings (
	source, source_id, source_url, title, company_name, company_name_normalized,
	company_url, location_raw, location_type, location_restriction, location_state,
	compensation_raw, compensation_type, compensation_min, compensation_max,
	hourly_rate_min, hourly_rate_max, monthly_retainer_min, monthly_retainer_max,
	hours_raw, hours_per_week_min, hours_per_week_max, job_type, experience_years_min,
	function_category, seniority_tier, date_posted_raw, date_posted, description,
	is_active, date_scraped, last_seen
) VALUES (
	:source, :source_id, :source_url, :title, :company_name, :company_name_normalized,
	:company_url, :location_raw, :location_type, :location_restriction, :location_state,
	:compensation_raw, :compensation_type, :compensation_min, :compensation_max,
	:hourly_rate_min, :hourly_rate_max, :monthly_retainer_min, :monthly_retainer_max,
	:hours_raw, :hours_per_week_min, :hours_per_week_max, :job_type, :experience_years_min,
	:function_category, :seniority_tier, :date_posted_raw, :date_posted, :description,
	:is_active, :date_scraped, :last_seen
)
ON CONFLICT (source, source_id) DO UPDATE SET
	source_url = COALESCE(NULLIF(excluded.source_url, ''), listings.source_url),
	title = COALESCE(NULLIF(excluded.title, ''), listings.title),
	company_name = COALESCE(NULLIF(excluded.company_name, ''), listings.company_name),
	company_name_normalized = COALESCE(NULLIF(excluded.company_name_normalized, ''), listings.company_name_normalized),
	company_url = COALESCE(NULLIF(excluded.company_url, ''), listings.company_url),
	location_raw = COALESCE(NULLIF(excluded.location_raw, ''), listings.location_raw),
	location_type = excluded.location_type,
	location_restriction = excluded.location_restriction,
	location_state = excluded.location_state,
	compensation_raw = COALESCE(NULLIF(excluded.compensation_raw, ''), listings.compensation_raw),
	compensation_type = excluded.compensation_type,
	compensation_min = COALESCE(excluded.compensation_min, listings.compensation_min),
	compensation_max = COALESCE(excluded.compensation_max, listings.compensation_max),
	hourly_rate_min = COALESCE(excluded.hourly_rate_min, listings.hourly_rate_min),
	hourly_rate_max = COALESCE(excluded.hourly_rate_max, listings.hourly_rate_max),
	monthly_retainer_min = COALESCE(excluded.monthly_retainer_min, listings.monthly_retainer_min),
	monthly_retainer_max = COALESCE(excluded.monthly_retainer_max, listings.monthly_retainer_max),
	hours_raw = COALESCE(NULLIF(excluded.hours_raw, ''), listings.hours_raw),
	hours_per_week_min = COALESCE(excluded.hours_per_week_min, listings.hours_per_week_min),
	hours_per_week_max = COALESCE(excluded.hours_per_week_max, listings.hours_per_week_max),
	job_type = COALESCE(NULLIF(excluded.job_type, ''), listings.job_type),
	experience_years_min = COALESCE(excluded.experience_years_min, listings.experience_years_min),
	function_category = excluded.function_category,
	seniority_tier = excluded.seniority_tier,
	date_posted_raw = COALESCE(NULLIF(excluded.date_posted_raw, ''), listings.date_posted_raw),
	date_posted = COALESCE(excluded.date_posted, listings.date_posted),
	description = COALESCE(NULLIF(excluded.description, ''), listings.description),
	is_active = excluded.is_active,
	last_seen = excluded.last_seen
RETURNING id`

// UpsertListing writes one normalized listing and reports whether it was
// new to the store. The listing's ID is filled in either way.
func (s *Store) UpsertListing(ctx context.Context, listing *models.Listing) (bool, error) {
	var exists bool
	probe := s.db.Rebind(`SELECT EXISTS (SELECT 1 FROM listings WHERE source = ? AND source_id = ?)`)
	if err := s.db.GetContext(ctx, &exists, probe, listing.Source, listing.SourceID); err != nil {
		return false, fmt.Errorf("failed to check for existing listing: %w", err)
	}

	rows, err := s.db.NamedQueryContext(ctx, upsertListing, listing)
	if err != nil {
		return false, fmt.Errorf("failed to upsert listing %s/%s: %w", listing.Source, listing.SourceID, err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&listing.ID); err != nil {
			return false, fmt.Errorf("failed to scan listing id: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("failed to upsert listing %s/%s: %w", listing.Source, listing.SourceID, err)
	}
	return !exists, nil
}

// DeactivateStale soft-deletes listings of one source that were last seen
// before cutoff and whose source id is not in seenIDs. Returns how many
// rows were deactivated.
func (s *Store) DeactivateStale(ctx context.Context, source string, cutoff time.Time, seenIDs []string) (int, error) {
	query := `UPDATE listings SET is_active = FALSE WHERE source = ? AND is_active = TRUE AND last_seen < ?`
	args := []any{source, cutoff}

	if len(seenIDs) > 0 {
		clause, inArgs, err := sqlx.In(`source_id NOT IN (?)`, seenIDs)
		if err != nil {
			return 0, fmt.Errorf("failed to build seen-id clause: %w", err)
		}
		query += " AND " + clause
		args = append(args, inArgs...)
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate stale listings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

// ListActive returns every active listing, newest postings first. Listings
// without a parsed posting date sort last.
func (s *Store) ListActive(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	query := `SELECT * FROM listings WHERE is_active = TRUE ORDER BY date_posted DESC NULLS LAST, id DESC`
	if err := s.db.SelectContext(ctx, &listings, query); err != nil {
		return nil, fmt.Errorf("failed to list active listings: %w", err)
	}
	return listings, nil
}

// ListActiveBySource returns the active listings of one source, newest
// postings first.
func (s *Store) ListActiveBySource(ctx context.Context, source string) ([]models.Listing, error) {
	var listings []models.Listing
	query := s.db.Rebind(`SELECT * FROM listings WHERE is_active = TRUE AND source = ? ORDER BY date_posted DESC NULLS LAST, id DESC`)
	if err := s.db.SelectContext(ctx, &listings, query, source); err != nil {
		return nil, fmt.Errorf("failed to list active listings for %s: %w", source, err)
	}
	return listings, nil
}

// CountNewSince counts listings first scraped at or after the given instant.
func (s *Store) CountNewSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	query := s.db.Rebind(`SELECT COUNT(*) FROM listings WHERE date_scraped >= ?`)
	if err := s.db.GetContext(ctx, &count, query, since); err != nil {
		return 0, fmt.Errorf("failed to count new listings: %w", err)
	}
	return count, nil
}

// CountRemovedBetween counts listings deactivated within [from, to): rows
// now inactive whose last sighting fell inside the window.
func (s *Store) CountRemovedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	query := s.db.Rebind(`SELECT COUNT(*) FROM listings WHERE is_active = FALSE AND last_seen >= ? AND last_seen < ?`)
	if err := s.db.GetContext(ctx, &count, query, from, to); err != nil {
		return 0, fmt.Errorf("failed to count removed listings: %w", err)
	}
	return count, nil
}
