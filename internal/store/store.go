package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists listings, scrape runs, and snapshots. Queries are written
// with ? placeholders and rebound for the active driver, so the same store
// runs against sqlite3 (the default) and postgres.
type Store struct {
	db *sqlx.DB
}

// New wraps an existing connection without touching the schema. Callers
// that open their own connection (or a mock) use this directly.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects with the given driver, applies the schema, and returns a
// ready store.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	// SQLite allows a single writer; more connections just turn into
	// SQLITE_BUSY errors under concurrent runs.
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	s := New(db)
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const createListingsTable = `
CREATE TABLE IF NOT EXISTS listings (
	id %s,
	source TEXT NOT NULL,
	source_id TEXT NOT NULL,
	source_url TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL DEFAULT '',
	company_name_normalized TEXT NOT NULL DEFAULT '',
	company_url TEXT NOT NULL DEFAULT '',
	location_raw TEXT NOT NULL DEFAULT '',
	location_type TEXT NOT NULL DEFAULT '',
	location_restriction TEXT NOT NULL DEFAULT '',
	location_state TEXT NOT NULL DEFAULT '',
	compensation_raw TEXT NOT NULL DEFAULT '',
	compensation_type TEXT NOT NULL DEFAULT 'not_disclosed',
	compensation_min DOUBLE PRECISION,
	compensation_max DOUBLE PRECISION,
	hourly_rate_min DOUBLE PRECISION,
	hourly_rate_max DOUBLE PRECISION,
	monthly_retainer_min DOUBLE PRECISION,
	monthly_retainer_max DOUBLE PRECISION,
	hours_raw TEXT NOT NULL DEFAULT '',
	hours_per_week_min DOUBLE PRECISION,
	hours_per_week_max DOUBLE PRECISION,
	job_type TEXT NOT NULL DEFAULT '',
	experience_years_min INTEGER,
	function_category TEXT NOT NULL DEFAULT 'other',
	seniority_tier TEXT NOT NULL DEFAULT 'unknown',
	date_posted_raw TEXT NOT NULL DEFAULT '',
	date_posted TIMESTAMP,
	description TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	date_scraped TIMESTAMP NOT NULL,
	last_seen TIMESTAMP NOT NULL,
	UNIQUE (source, source_id)
)`

const createScrapeRunsTable = `
CREATE TABLE IF NOT EXISTS scrape_runs (
	id %s,
	source TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	completed_at TIMESTAMP,
	status TEXT NOT NULL DEFAULT 'running',
	listings_found INTEGER NOT NULL DEFAULT 0,
	listings_new INTEGER NOT NULL DEFAULT 0,
	listings_updated INTEGER NOT NULL DEFAULT 0,
	listings_deactivated INTEGER NOT NULL DEFAULT 0,
	error_count INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT ''
)`

const createListingSnapshotsTable = `
CREATE TABLE IF NOT EXISTS listing_snapshots (
	id %s,
	snapshot_date TIMESTAMP NOT NULL,
	source TEXT NOT NULL DEFAULT 'all',
	total_active INTEGER NOT NULL DEFAULT 0,
	new_today INTEGER NOT NULL DEFAULT 0,
	removed_today INTEGER NOT NULL DEFAULT 0,
	by_function TEXT NOT NULL DEFAULT '{}',
	by_seniority TEXT NOT NULL DEFAULT '{}',
	by_location_type TEXT NOT NULL DEFAULT '{}',
	by_hours_bucket TEXT NOT NULL DEFAULT '{}',
	comp_disclosed_count INTEGER NOT NULL DEFAULT 0,
	comp_disclosed_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
	UNIQUE (snapshot_date, source)
)`

const createCompensationSnapshotsTable = `
CREATE TABLE IF NOT EXISTS compensation_snapshots (
	id %s,
	snapshot_date TIMESTAMP NOT NULL,
	function_category TEXT NOT NULL,
	sample_size INTEGER NOT NULL DEFAULT 0,
	hourly_rate_min_avg DOUBLE PRECISION NOT NULL DEFAULT 0,
	hourly_rate_max_avg DOUBLE PRECISION,
	hourly_rate_median DOUBLE PRECISION NOT NULL DEFAULT 0,
	UNIQUE (snapshot_date, function_category)
)`

var schemaIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_listings_source ON listings (source)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_active ON listings (is_active)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_function ON listings (function_category)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_last_seen ON listings (last_seen)`,
	`CREATE INDEX IF NOT EXISTS idx_scrape_runs_source ON scrape_runs (source)`,
	`CREATE INDEX IF NOT EXISTS idx_listing_snapshots_date ON listing_snapshots (snapshot_date)`,
}

func (s *Store) ensureSchema(ctx context.Context) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.db.DriverName() == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	stmts := []string{
		fmt.Sprintf(createListingsTable, idColumn),
		fmt.Sprintf(createScrapeRunsTable, idColumn),
		fmt.Sprintf(createListingSnapshotsTable, idColumn),
		fmt.Sprintf(createCompensationSnapshotsTable, idColumn),
	}
	stmts = append(stmts, schemaIndexes...)

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
