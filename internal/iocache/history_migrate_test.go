package iocache

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateHistory_NoneBackend(t *testing.T) {
	err := MigrateHistory(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported")
}

func TestMigrateHistory_Unsupported(t *testing.T) {
	err := MigrateHistory(schema.BoltBackend, "", -1)
	assert.Error(t, err)
}

func TestMigrateHistory_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Run migration to latest version
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
	assert.Equal(t, 3, migrationVersion(t, dbPath))

	// Run migration again (should be a no-op)
	assert.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	// Step down to version 2, dropping the index only
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 2))
	assert.Equal(t, 2, migrationVersion(t, dbPath))

	// Rollback to version 0
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
	assert.False(t, tableExists(t, dbPath, snapshotRunsTable))

	// Migrate back up, and the store works on the migrated schema
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 3))
	assert.True(t, tableExists(t, dbPath, snapshotRunsTable))
	assert.True(t, tableExists(t, dbPath, developerMetricsTable))

	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalRuns)
}

func migrationVersion(t *testing.T, dbPath string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var version int
	require.NoError(t, db.QueryRow("SELECT version FROM schema_migrations").Scan(&version))
	return version
}

func tableExists(t *testing.T, dbPath, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&count))
	return count == 1
}
