package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

// Snapshot rows are keyed by date so recomputing a day replaces its row
// instead of appending a duplicate.
const upsertListingSnapshot = `
INSERT INTO listing_snapshots (
	snapshot_date, source, total_active, new_today, removed_today,
	by_function, by_seniority, by_location_type, by_hours_bucket,
	comp_disclosed_count, comp_disclosed_pct
) VALUES (
	:snapshot_date, :source, :total_active, :new_today, :removed_today,
	:by_function, :by_seniority, :by_location_type, :by_hours_bucket,
	:comp_disclosed_count, :comp_disclosed_pct
)
ON CONFLICT (snapshot_date, source) DO UPDATE SET
	total_active = excluded.total_active,
	new_today = excluded.new_today,
	removed_today = excluded.removed_today,
	by_function = excluded.by_function,
	by_seniority = excluded.by_seniority,
	by_location_type = excluded.by_location_type,
	by_hours_bucket = excluded.by_hours_bucket,
	comp_disclosed_count = excluded.comp_disclosed_count,
	comp_disclosed_pct = excluded.comp_disclosed_pct`

const upsertCompensationSnapshot = `
INSERT INTO compensation_snapshots (
	snapshot_date, function_category, sample_size,
	hourly_rate_min_avg, hourly_rate_max_avg, hourly_rate_median
) VALUES (
	:snapshot_date, :function_category, :sample_size,
	:hourly_rate_min_avg, :hourly_rate_max_avg, :hourly_rate_median
)
ON CONFLICT (snapshot_date, function_category) DO UPDATE SET
	sample_size = excluded.sample_size,
	hourly_rate_min_avg = excluded.hourly_rate_min_avg,
	hourly_rate_max_avg = excluded.hourly_rate_max_avg,
	hourly_rate_median = excluded.hourly_rate_median`

// SaveListingSnapshot writes the daily snapshot for its date, replacing an
// earlier computation of the same day.
func (s *Store) SaveListingSnapshot(ctx context.Context, snap *models.ListingSnapshot) error {
	if _, err := s.db.NamedExecContext(ctx, upsertListingSnapshot, snap); err != nil {
		return fmt.Errorf("failed to save listing snapshot: %w", err)
	}
	return nil
}

// SaveCompensationSnapshots writes the per-function compensation rows of
// one snapshot date.
func (s *Store) SaveCompensationSnapshots(ctx context.Context, snaps []models.CompensationSnapshot) error {
	for i := range snaps {
		if _, err := s.db.NamedExecContext(ctx, upsertCompensationSnapshot, &snaps[i]); err != nil {
			return fmt.Errorf("failed to save compensation snapshot for %s: %w", snaps[i].FunctionCategory, err)
		}
	}
	return nil
}

// LatestListingSnapshot returns the newest snapshot row for source, or nil
// when none has been taken yet.
func (s *Store) LatestListingSnapshot(ctx context.Context, source string) (*models.ListingSnapshot, error) {
	var snap models.ListingSnapshot
	query := s.db.Rebind(`SELECT * FROM listing_snapshots WHERE source = ? ORDER BY snapshot_date DESC, id DESC LIMIT 1`)
	err := s.db.GetContext(ctx, &snap, query, source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest listing snapshot: %w", err)
	}
	return &snap, nil
}

// ListingSnapshotsBetween returns source's snapshots with dates in
// [from, to], oldest first.
func (s *Store) ListingSnapshotsBetween(ctx context.Context, source string, from, to time.Time) ([]models.ListingSnapshot, error) {
	var snaps []models.ListingSnapshot
	query := s.db.Rebind(`
		SELECT * FROM listing_snapshots
		WHERE source = ? AND snapshot_date >= ? AND snapshot_date <= ?
		ORDER BY snapshot_date ASC`)
	if err := s.db.SelectContext(ctx, &snaps, query, source, from, to); err != nil {
		return nil, fmt.Errorf("failed to list listing snapshots: %w", err)
	}
	return snaps, nil
}

// CompensationSnapshotsOn returns the per-function compensation rows taken
// on one snapshot date.
func (s *Store) CompensationSnapshotsOn(ctx context.Context, date time.Time) ([]models.CompensationSnapshot, error) {
	var snaps []models.CompensationSnapshot
	query := s.db.Rebind(`SELECT * FROM compensation_snapshots WHERE snapshot_date = ? ORDER BY function_category ASC`)
	if err := s.db.SelectContext(ctx, &snaps, query, date); err != nil {
		return nil, fmt.Errorf("failed to list compensation snapshots: %w", err)
	}
	return snaps, nil
}
