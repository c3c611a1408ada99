package services

import (
	"database/sql"
	"testing"

	"github.com/isdelr/chat-relay-be/internal/database"
	_ "modernc.org/sqlite"
)

// newTestDB opens an in-memory sqlite database with the full schema applied.
// The pool is pinned to a single connection so every query sees the same
// in-memory database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
