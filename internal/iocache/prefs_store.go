package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// preferencesTable is the name of the table for UI preferences.
const preferencesTable = "shipboard_preferences"

// PreferenceStoreImpl stores preferences in a SQL database.
type PreferenceStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	now       func() time.Time
}

var _ contract.PreferencesStore = &PreferenceStoreImpl{} // Compile-time check

// NewPreferenceStore initializes and returns a preferences store for the backend.
func NewPreferenceStore(backend schema.DatabaseBackend, connStr string) (contract.PreferencesStore, error) {
	switch backend {
	case schema.BoltBackend:
		return NewBoltPreferenceStore(connStr)
	case schema.NoneBackend:
		return &PreferenceStoreImpl{tableName: preferencesTable, backend: backend, now: time.Now}, nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		return newSQLPreferenceStore(preferencesTable, backend, connStr)
	default:
		return nil, fmt.Errorf("unsupported preferences backend: %s. Must be sqlite, mysql, postgresql, bolt, or none", backend)
	}
}

func newSQLPreferenceStore(tableName string, backend schema.DatabaseBackend, connStr string) (*PreferenceStoreImpl, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	db, err := openDB(backend, connStr, contract.GetPrefsDBFilePath())
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(getCreatePreferencesQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &PreferenceStoreImpl{
		db:        db,
		tableName: tableName,
		backend:   backend,
		now:       time.Now,
	}, nil
}

// getCreatePreferencesQuery returns the CREATE TABLE query for the given backend.
func getCreatePreferencesQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				pref_key VARCHAR(255) PRIMARY KEY,
				pref_value BLOB NOT NULL,
				updated_at BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				pref_key TEXT PRIMARY KEY,
				pref_value BYTEA NOT NULL,
				updated_at BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				pref_key TEXT PRIMARY KEY,
				pref_value BLOB NOT NULL,
				updated_at INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// Load retrieves the value stored under key.
func (ps *PreferenceStoreImpl) Load(key string) ([]byte, bool, error) {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil, false, nil
	}

	quotedTableName := quoteTableName(ps.tableName, ps.backend)
	query := fmt.Sprintf(`SELECT pref_value FROM %s WHERE pref_key = %s`, quotedTableName, placeholder(ps.backend, 1))

	var value []byte
	if err := ps.db.QueryRow(query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load preference %q: %w", key, err)
	}
	return value, true, nil
}

// Save inserts or replaces the value stored under key.
func (ps *PreferenceStoreImpl) Save(key string, value []byte) error {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil
	}
	if value == nil {
		value = []byte{}
	}
	if _, err := ps.db.Exec(ps.getUpsertQuery(), key, value, ps.now().Unix()); err != nil {
		return fmt.Errorf("failed to save preference %q: %w", key, err)
	}
	return nil
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ps *PreferenceStoreImpl) getUpsertQuery() string {
	quotedTableName := quoteTableName(ps.tableName, ps.backend)
	switch ps.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (pref_key, pref_value, updated_at) VALUES (?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE pref_value = new.pref_value, updated_at = new.updated_at`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (pref_key, pref_value, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (pref_key) DO UPDATE SET pref_value = EXCLUDED.pref_value, updated_at = EXCLUDED.updated_at`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (pref_key, pref_value, updated_at) VALUES (?, ?, ?)`, quotedTableName)
	}
}

// Close closes the underlying DB connection.
func (ps *PreferenceStoreImpl) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

// GetStatus returns status information about the preferences store.
func (ps *PreferenceStoreImpl) GetStatus() (schema.PreferenceStatus, error) {
	status := schema.PreferenceStatus{
		Backend:   string(ps.backend),
		Connected: ps.db != nil,
	}

	if ps.backend == schema.NoneBackend || ps.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(ps.tableName, ps.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := ps.db.QueryRow(countQuery).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	var lastTs, oldestTs int64
	rangeQuery := fmt.Sprintf("SELECT MAX(updated_at), MIN(updated_at) FROM %s", quotedTableName)
	if err := ps.db.QueryRow(rangeQuery).Scan(&lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.OldestEntryTime = time.Unix(oldestTs, 0)

	return status, nil
}
