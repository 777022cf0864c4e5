package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/thea/internal/db"
)

// NewTestDB returns a migrated in-memory SQLite store scoped to t.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	store, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// NewTestUoW wraps store in the SQLite unit of work used by the services.
func NewTestUoW(store *sql.DB) db.UnitOfWork {
	return db.NewUnitOfWork(store, db.DialectSQLite)
}

// NewFileTestDB returns a migrated SQLite store in a temp file. Unlike
// ":memory:", every pooled connection sees the same data, so it is the one
// to use for concurrency tests.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	store, err := db.OpenDB(filepath.Join(t.TempDir(), "thea.db"))
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
