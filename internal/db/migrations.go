package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS logs (
  id INTEGER PRIMARY KEY,
  project TEXT NOT NULL,
  description TEXT NOT NULL,
  date TEXT NOT NULL,
  created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_logs_date ON logs(date);
CREATE INDEX IF NOT EXISTS idx_logs_project ON logs(project);

CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: Add updated_at column to settings if not exists.
	// Databases created by fastrep 1.x only had key/value.
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('settings') WHERE name = 'updated_at'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check updated_at column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE settings ADD COLUMN updated_at TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("add updated_at column: %w", err)
		}
	}

	// Migration 2: Composite index for report range queries ordered by date then created_at
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_logs_date_created ON logs(date, created_at)`); err != nil {
		return fmt.Errorf("create idx_logs_date_created: %w", err)
	}

	return nil
}
