package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

func TestCreateRun(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	startedAt := time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO scrape_runs").
		WithArgs("indeed", startedAt, "running").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := s.CreateRun(ctx, "indeed", startedAt)
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}
	if id != 11 {
		t.Errorf("expected run id 11, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFinishRun(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	completedAt := time.Date(2024, 3, 15, 7, 4, 30, 0, time.UTC)

	mock.ExpectExec("UPDATE scrape_runs").
		WithArgs(completedAt, "partial", 25, 4, 21, 2, 1, "1 listing failed to normalize", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	run := models.ScrapeRun{
		ID:                  11,
		Source:              "indeed",
		CompletedAt:         &completedAt,
		Status:              models.RunStatusPartial,
		ListingsFound:       25,
		ListingsNew:         4,
		ListingsUpdated:     21,
		ListingsDeactivated: 2,
		ErrorCount:          1,
		ErrorMessage:        "1 listing failed to normalize",
	}
	if err := s.FinishRun(ctx, &run); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestFinishRunNotFound(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE scrape_runs").
		WillReturnResult(sqlmock.NewResult(0, 0))

	run := models.ScrapeRun{ID: 99, Status: models.RunStatusSuccess}
	if err := s.FinishRun(ctx, &run); err == nil {
		t.Fatal("expected error for unknown run id")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListRuns(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	started := time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "source", "started_at", "completed_at", "status", "listings_found"}).
		AddRow(int64(12), "fractionaljobs", started, nil, "running", 0).
		AddRow(int64(11), "indeed", started.Add(-time.Hour), started, "success", 25)
	mock.ExpectQuery("SELECT (.+) FROM scrape_runs").
		WithArgs(20).
		WillReturnRows(rows)

	runs, err := s.ListRuns(ctx, 20)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Status != models.RunStatusRunning || runs[0].CompletedAt != nil {
		t.Errorf("expected first run still running, got %+v", runs[0])
	}
	if runs[1].ListingsFound != 25 {
		t.Errorf("expected 25 listings found, got %d", runs[1].ListingsFound)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
