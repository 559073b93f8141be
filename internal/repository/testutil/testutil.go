// Package testutil provides sqlite-backed helpers for repository tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/hissain/fastrep/internal/db"
	"github.com/hissain/fastrep/internal/snowflake"
)

// NewTestDB opens a fresh migrated sqlite database in a temp dir.
// The connection is closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if err := snowflake.Init(1); err != nil {
		t.Fatalf("init snowflake: %v", err)
	}

	conn, err := db.Open(filepath.Join(t.TempDir(), "fastrep_test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// SeedLog inserts a log row with explicit date and creation timestamp and
// returns its ID. Bypasses the repository so tests control tie-breaking.
func SeedLog(t *testing.T, conn *sql.DB, project, description string, date, createdAt time.Time) int64 {
	t.Helper()

	id := snowflake.NextID()
	_, err := conn.Exec(
		`INSERT INTO logs (id, project, description, date, created_at) VALUES (?, ?, ?, ?, ?)`,
		id,
		project,
		description,
		date.Format("2006-01-02"),
		createdAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		t.Fatalf("seed log: %v", err)
	}
	return id
}
