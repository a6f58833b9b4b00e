package iocache

import (
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global store manager.
// An empty prefsBackend leaves preferences disabled, and an empty historyBackend leaves
// history tracking disabled.
func InitStores(prefsBackend schema.DatabaseBackend, prefsConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		prefs, history, err := openStores(prefsBackend, prefsConnStr, historyBackend, historyConnStr)
		if err != nil {
			initErr = err
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.prefs = prefs
		Manager.history = history
	})

	return initErr
}

// openStores opens both stores, closing the first if the second fails.
func openStores(prefsBackend schema.DatabaseBackend, prefsConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) (contract.PreferencesStore, contract.HistoryStore, error) {
	var prefs contract.PreferencesStore
	if prefsBackend != "" {
		var err error
		prefs, err = NewPreferenceStore(prefsBackend, prefsConnStr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize preferences store: %w", err)
		}
	}

	var history contract.HistoryStore
	if historyBackend != "" {
		var err error
		history, err = NewHistoryStore(historyBackend, historyConnStr)
		if err != nil {
			if prefs != nil {
				_ = prefs.Close()
			}
			return nil, nil, fmt.Errorf("failed to initialize history store: %w", err)
		}
	}

	return prefs, history, nil
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.prefs != nil {
			_ = Manager.prefs.Close()
		}
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// ClearPreferences removes every saved preference for the specified backend.
// For SQLite and bbolt, it deletes the file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearPreferences(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeFile(connStr, contract.GetPrefsDBFilePath())
	case schema.BoltBackend:
		return removeFile(connStr, contract.GetPrefsBoltFilePath())
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return dropTables(backend, connStr, preferencesTable)
	case schema.NoneBackend:
		return nil
	default:
		return fmt.Errorf("unsupported preferences backend for clearing: %s", backend)
	}
}

// ClearHistory removes all snapshot history for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the history tables.
// For NoneBackend, it does nothing.
func ClearHistory(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeFile(connStr, contract.GetHistoryDBFilePath())
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		// Metrics reference runs, so drop them first
		return dropTables(backend, connStr, developerMetricsTable, snapshotRunsTable, "schema_migrations")
	case schema.NoneBackend, "":
		return nil
	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// removeFile deletes a store file, ignoring a file that does not exist.
func removeFile(path, defaultPath string) error {
	if path == "" {
		path = defaultPath
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove database file %s: %w", path, err)
	}
	return nil
}

// dropTables connects to the SQL database and drops each table if it exists.
func dropTables(backend schema.DatabaseBackend, connStr string, tables ...string) error {
	db, err := openDB(backend, connStr, "")
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	for _, table := range tables {
		if err := validateTableName(table); err != nil {
			return err
		}
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
