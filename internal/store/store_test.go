package store_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/romelikethecity/fractional-job-scraper/internal/store"
)

// newMockStore wires a store to a sqlmock connection. The sqlite3 driver
// name keeps ? placeholders through Rebind, so expectations stay readable.
func newMockStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return store.New(sqlx.NewDb(mockDB, "sqlite3")), mock
}
