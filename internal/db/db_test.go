package db_test

import (
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/stretchr/testify/require"

	"github.com/hissain/fastrep/internal/db"
)

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Open(dbPath)
	require.NoError(t, err)
	require.NotNil(t, database)
	defer database.Close()

	// Verify tables exist (basic check)
	for _, table := range []string{"logs", "settings"} {
		var name string
		err = database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err)
		require.Equal(t, table, name)
	}
}

func TestOpen_CreatesParentDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()
}

func TestOpen_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO logs (id, project, description, date, created_at) VALUES (1, 'P', 'd', '2024-01-01', '2024-01-01 10:00:00')`)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	// Migrations are idempotent; data survives a reopen.
	database, err = db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()

	var count int
	err = database.QueryRow("SELECT COUNT(*) FROM logs").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestMigrate_SettingsUpdatedAt(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()

	var count int
	err = database.QueryRow("SELECT COUNT(*) FROM pragma_table_info('settings') WHERE name='updated_at'").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestMigrate_RangeIndex(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()

	var name string
	err = database.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name='idx_logs_date_created'").Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "idx_logs_date_created", name)
}
