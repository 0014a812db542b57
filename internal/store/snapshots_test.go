package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

func TestSaveListingSnapshot(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO listing_snapshots").
		WithArgs(date, "all", 120, 4, 2, `{"finance":80}`, `{"c_level":95}`, `{"remote":110}`, `{"10-20":60}`, 45, 37.5).
		WillReturnResult(sqlmock.NewResult(1, 1))

	snap := models.ListingSnapshot{
		SnapshotDate:     date,
		Source:           "all",
		TotalActive:      120,
		NewToday:         4,
		RemovedToday:     2,
		ByFunction:       models.CountMap{"finance": 80},
		BySeniority:      models.CountMap{"c_level": 95},
		ByLocationType:   models.CountMap{"remote": 110},
		ByHoursBucket:    models.CountMap{"10-20": 60},
		CompDisclosed:    45,
		CompDisclosedPct: 37.5,
	}
	if err := s.SaveListingSnapshot(ctx, &snap); err != nil {
		t.Fatalf("SaveListingSnapshot() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSaveCompensationSnapshots(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	maxAvg := 180.0

	mock.ExpectExec("INSERT INTO compensation_snapshots").
		WithArgs(date, "finance", 12, 150.0, maxAvg, 145.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO compensation_snapshots").
		WithArgs(date, "marketing", 5, 110.0, nil, 100.0).
		WillReturnResult(sqlmock.NewResult(2, 1))

	snaps := []models.CompensationSnapshot{
		{SnapshotDate: date, FunctionCategory: models.FunctionFinance, SampleSize: 12, HourlyRateMinAvg: 150, HourlyRateMaxAvg: &maxAvg, HourlyRateMedian: 145},
		{SnapshotDate: date, FunctionCategory: models.FunctionMarketing, SampleSize: 5, HourlyRateMinAvg: 110, HourlyRateMedian: 100},
	}
	if err := s.SaveCompensationSnapshots(ctx, snaps); err != nil {
		t.Fatalf("SaveCompensationSnapshots() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestLatestListingSnapshot(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "snapshot_date", "source", "total_active", "by_function", "comp_disclosed_pct"}).
		AddRow(int64(7), date, "all", 120, `{"finance":80}`, 37.5)
	mock.ExpectQuery("SELECT (.+) FROM listing_snapshots (.+) ORDER BY snapshot_date DESC").
		WithArgs("all").
		WillReturnRows(rows)

	snap, err := s.LatestListingSnapshot(ctx, "all")
	if err != nil {
		t.Fatalf("LatestListingSnapshot() error = %v", err)
	}
	if snap == nil {
		t.Fatal("expected a snapshot row")
	}
	if !snap.SnapshotDate.Equal(date) || snap.TotalActive != 120 {
		t.Errorf("snapshot = %+v, want date %v with 120 active", snap, date)
	}
	if snap.ByFunction["finance"] != 80 {
		t.Errorf("expected finance count 80, got %d", snap.ByFunction["finance"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestLatestListingSnapshotEmpty(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM listing_snapshots").
		WithArgs("all").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	snap, err := s.LatestListingSnapshot(ctx, "all")
	if err != nil {
		t.Fatalf("LatestListingSnapshot() error = %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil snapshot before any have been taken, got %+v", snap)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListingSnapshotsBetween(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	to := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -7)

	rows := sqlmock.NewRows([]string{"id", "snapshot_date", "source", "total_active", "new_today", "by_function"}).
		AddRow(int64(1), from.AddDate(0, 0, 1), "all", 100, 3, `{"finance":60}`).
		AddRow(int64(2), to, "all", 120, 4, `{"finance":80}`)
	mock.ExpectQuery("SELECT (.+) FROM listing_snapshots").
		WithArgs("all", from, to).
		WillReturnRows(rows)

	snaps, err := s.ListingSnapshotsBetween(ctx, "all", from, to)
	if err != nil {
		t.Fatalf("ListingSnapshotsBetween() error = %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[1].ByFunction["finance"] != 80 {
		t.Errorf("expected finance count 80, got %d", snaps[1].ByFunction["finance"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCompensationSnapshotsOn(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	maxAvg := 180.0

	rows := sqlmock.NewRows([]string{"id", "snapshot_date", "function_category", "sample_size", "hourly_rate_min_avg", "hourly_rate_max_avg", "hourly_rate_median"}).
		AddRow(int64(1), date, "finance", 12, 150.0, maxAvg, 145.0).
		AddRow(int64(2), date, "marketing", 5, 110.0, nil, 100.0)
	mock.ExpectQuery("SELECT (.+) FROM compensation_snapshots").
		WithArgs(date).
		WillReturnRows(rows)

	snaps, err := s.CompensationSnapshotsOn(ctx, date)
	if err != nil {
		t.Fatalf("CompensationSnapshotsOn() error = %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(snaps))
	}
	if snaps[0].FunctionCategory != models.FunctionFinance || snaps[0].SampleSize != 12 {
		t.Errorf("first row = %+v, want finance with sample 12", snaps[0])
	}
	if snaps[1].HourlyRateMaxAvg != nil {
		t.Errorf("expected nil max average when the column is NULL, got %v", *snaps[1].HourlyRateMaxAvg)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
