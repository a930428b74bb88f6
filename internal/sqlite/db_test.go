package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a file-backed SQLite database in a temp directory.
// A file (not :memory:) so the connection pool sees one database, which
// the concurrency tests rely on.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "metadata.db"))
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// NewTestStore creates a test database wrapped in a Store.
func NewTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewTestDB(t))
}

func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"project_info",
		"sequences",
		"shots",
		"assets",
		"version_types",
		"versions",
		"users",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db := NewTestDB(t)

	err := db.RunMigrations()
	require.NoError(t, err, "reapplying migrations should be a no-op")
}

func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}
