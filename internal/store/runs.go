package store

import (
	"context"
	"fmt"
	"time"

	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

// CreateRun opens a run row in the running state and returns its id.
func (s *Store) CreateRun(ctx context.Context, source string, startedAt time.Time) (int64, error) {
	var id int64
	query := s.db.Rebind(`INSERT INTO scrape_runs (source, started_at, status) VALUES (?, ?, ?) RETURNING id`)
	if err := s.db.GetContext(ctx, &id, query, source, startedAt, models.RunStatusRunning); err != nil {
		return 0, fmt.Errorf("failed to create scrape run: %w", err)
	}
	return id, nil
}

// FinishRun finalizes a run row with its terminal status and counters.
func (s *Store) FinishRun(ctx context.Context, run *models.ScrapeRun) error {
	query := s.db.Rebind(`
		UPDATE scrape_runs
		SET completed_at = ?, status = ?, listings_found = ?, listings_new = ?,
		    listings_updated = ?, listings_deactivated = ?, error_count = ?, error_message = ?
		WHERE id = ?`)

	res, err := s.db.ExecContext(ctx, query,
		run.CompletedAt, run.Status, run.ListingsFound, run.ListingsNew,
		run.ListingsUpdated, run.ListingsDeactivated, run.ErrorCount, run.ErrorMessage,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish scrape run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("scrape run not found: %d", run.ID)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit of 0 means
// no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]models.ScrapeRun, error) {
	var runs []models.ScrapeRun
	query := `SELECT * FROM scrape_runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	if err := s.db.SelectContext(ctx, &runs, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list scrape runs: %w", err)
	}
	return runs, nil
}
