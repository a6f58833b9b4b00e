package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// Table names for snapshot history.
const (
	snapshotRunsTable     = "shipboard_snapshot_runs"
	developerMetricsTable = "shipboard_developer_metrics"
)

// HistoryTables lists the history tables in creation order.
var HistoryTables = []string{snapshotRunsTable, developerMetricsTable}

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	switch backend {
	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", backend)
	}

	db, err := openDB(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the snapshot history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{snapshotRunsTable, getCreateSnapshotRunsQuery(backend)},
		{developerMetricsTable, getCreateDeveloperMetricsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateSnapshotRunsQuery returns the CREATE TABLE query for shipboard_snapshot_runs.
func getCreateSnapshotRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(snapshotRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_tag VARCHAR(36) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_developers INT NOT NULL DEFAULT 0,
				period_label VARCHAR(255) NOT NULL,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGSERIAL PRIMARY KEY,
				run_tag TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_developers INT NOT NULL DEFAULT 0,
				period_label TEXT NOT NULL,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_tag TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_developers INTEGER NOT NULL DEFAULT 0,
				period_label TEXT NOT NULL,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateDeveloperMetricsQuery returns the CREATE TABLE query for shipboard_developer_metrics.
func getCreateDeveloperMetricsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(developerMetricsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGINT NOT NULL,
				developer_key VARCHAR(255) NOT NULL,
				snapshot_time DATETIME(6) NOT NULL,
				releases INT NOT NULL,
				feat INT NOT NULL,
				fix INT NOT NULL,
				refacto INT NOT NULL,
				chore INT NOT NULL,
				bugs_introduced INT NOT NULL,
				auto_fixes INT NOT NULL,
				coverage_pct INT NOT NULL,
				PRIMARY KEY (snapshot_id, developer_key)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id BIGINT NOT NULL,
				developer_key TEXT NOT NULL,
				snapshot_time TIMESTAMPTZ NOT NULL,
				releases INT NOT NULL,
				feat INT NOT NULL,
				fix INT NOT NULL,
				refacto INT NOT NULL,
				chore INT NOT NULL,
				bugs_introduced INT NOT NULL,
				auto_fixes INT NOT NULL,
				coverage_pct INT NOT NULL,
				PRIMARY KEY (snapshot_id, developer_key)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_id INTEGER NOT NULL,
				developer_key TEXT NOT NULL,
				snapshot_time TEXT NOT NULL,
				releases INTEGER NOT NULL,
				feat INTEGER NOT NULL,
				fix INTEGER NOT NULL,
				refacto INTEGER NOT NULL,
				chore INTEGER NOT NULL,
				bugs_introduced INTEGER NOT NULL,
				auto_fixes INTEGER NOT NULL,
				coverage_pct INTEGER NOT NULL,
				PRIMARY KEY (snapshot_id, developer_key)
			);
		`, quotedTableName)
	}
}

// BeginSnapshot creates a new snapshot run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginSnapshot(startTime time.Time, periodLabel string, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(snapshotRunsTable, hs.backend)
	runTag := uuid.NewString()

	var snapshotID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_tag, start_time, period_label, config_params) VALUES ($1, $2, $3, $4) RETURNING snapshot_id`, quotedTableName)
		err = hs.db.QueryRow(query, runTag, startTime, periodLabel, string(configJSON)).Scan(&snapshotID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_tag, start_time, period_label, config_params) VALUES (?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, runTag, formatTime(startTime, hs.backend), periodLabel, string(configJSON))
		if err != nil {
			return 0, fmt.Errorf("failed to insert snapshot run: %w", err)
		}
		snapshotID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot run: %w", err)
	}
	return snapshotID, nil
}

// EndSnapshot updates the snapshot run with completion data.
func (hs *HistoryStoreImpl) EndSnapshot(snapshotID int64, endTime time.Time, totalDevelopers int) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(snapshotRunsTable, hs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE snapshot_id = %s`, quotedTableName, placeholder(hs.backend, 1))
	row := hs.db.QueryRow(query, snapshotID)

	var startTime time.Time
	switch hs.backend {
	case schema.SQLiteBackend:
		var startTimeStr string
		if err := row.Scan(&startTimeStr); err != nil {
			return fmt.Errorf("failed to get start_time for snapshot %d: %w", snapshotID, err)
		}
		var err error
		if startTime, err = parseTime(startTimeStr); err != nil {
			return fmt.Errorf("failed to parse start_time: %w", err)
		}
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&startTime); err != nil {
			return fmt.Errorf("failed to get start_time for snapshot %d: %w", snapshotID, err)
		}
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_developers = %s WHERE snapshot_id = %s`,
		quotedTableName,
		placeholder(hs.backend, 1), placeholder(hs.backend, 2), placeholder(hs.backend, 3), placeholder(hs.backend, 4))
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, totalDevelopers, snapshotID); err != nil {
		return fmt.Errorf("failed to update snapshot run: %w", err)
	}
	return nil
}

// RecordDeveloperSnapshot stores the metrics of one developer for a snapshot.
func (hs *HistoryStoreImpl) RecordDeveloperSnapshot(snapshotID int64, s schema.DeveloperSnapshot) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(developerMetricsTable, hs.backend)
	var values string
	if hs.backend == schema.PostgreSQLBackend {
		values = "$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11"
	} else {
		values = "?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?"
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (snapshot_id, developer_key, snapshot_time, releases, feat, fix,
		                refacto, chore, bugs_introduced, auto_fixes, coverage_pct)
		VALUES (%s)
	`, quotedTableName, values)

	_, err := hs.db.Exec(query,
		snapshotID, s.DeveloperKey, formatTime(s.SnapshotTime, hs.backend), s.Releases, s.Feat, s.Fix,
		s.Refacto, s.Chore, s.BugsIntroduced, s.AutoFixes, s.CoveragePct,
	)
	if err != nil {
		return fmt.Errorf("failed to insert developer snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(snapshotRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT snapshot_id, start_time FROM %s ORDER BY snapshot_id DESC LIMIT 1", runsTable)
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY snapshot_id ASC LIMIT 1", runsTable)

		switch hs.backend {
		case schema.SQLiteBackend:
			var lastRunTimeStr, oldestRunTimeStr string
			if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			if err := hs.db.QueryRow(oldestRunQuery).Scan(&oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
			var err error
			if status.LastRunTime, err = parseTime(lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			if status.OldestRunTime, err = parseTime(oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to parse oldest run time: %w", err)
			}
		default: // MySQL and PostgreSQL store as native datetime
			if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			if err := hs.db.QueryRow(oldestRunQuery).Scan(&status.OldestRunTime); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
		}

		devQuery := fmt.Sprintf("SELECT COUNT(DISTINCT developer_key) FROM %s", quoteTableName(developerMetricsTable, hs.backend))
		if err := hs.db.QueryRow(devQuery).Scan(&status.TotalDevelopers); err != nil {
			return status, fmt.Errorf("failed to get total developers: %w", err)
		}
	}

	for _, table := range HistoryTables {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllSnapshotRuns retrieves all snapshot runs from the store.
func (hs *HistoryStoreImpl) GetAllSnapshotRuns() ([]schema.SnapshotRunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT snapshot_id, run_tag, start_time, end_time, run_duration_ms, total_developers, period_label, config_params
		FROM %s ORDER BY snapshot_id`, quoteTableName(snapshotRunsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SnapshotRunRecord
	for rows.Next() {
		var record schema.SnapshotRunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.SnapshotID, &record.RunTag, &startTimeStr, &endTimeStr, &record.RunDurationMs,
				&record.TotalDevelopers, &record.PeriodLabel, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot run: %w", err)
			}
			if record.StartTime, err = parseTime(startTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.SnapshotID, &record.RunTag, &record.StartTime, &record.EndTime, &record.RunDurationMs,
				&record.TotalDevelopers, &record.PeriodLabel, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot runs: %w", err)
	}
	return results, nil
}

// GetAllDeveloperSnapshots retrieves all developer rows from the store.
func (hs *HistoryStoreImpl) GetAllDeveloperSnapshots() ([]schema.DeveloperSnapshotRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT snapshot_id, developer_key, snapshot_time, releases, feat, fix,
		refacto, chore, bugs_introduced, auto_fixes, coverage_pct
		FROM %s ORDER BY snapshot_id, developer_key`, quoteTableName(developerMetricsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query developer snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.DeveloperSnapshotRecord
	for rows.Next() {
		var record schema.DeveloperSnapshotRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var snapshotTimeStr string
			if err := rows.Scan(&record.SnapshotID, &record.DeveloperKey, &snapshotTimeStr, &record.Releases,
				&record.Feat, &record.Fix, &record.Refacto, &record.Chore,
				&record.BugsIntroduced, &record.AutoFixes, &record.CoveragePct); err != nil {
				return nil, fmt.Errorf("failed to scan developer snapshot: %w", err)
			}
			if record.SnapshotTime, err = parseTime(snapshotTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse snapshot_time: %w", err)
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.SnapshotID, &record.DeveloperKey, &record.SnapshotTime, &record.Releases,
				&record.Feat, &record.Fix, &record.Refacto, &record.Chore,
				&record.BugsIntroduced, &record.AutoFixes, &record.CoveragePct); err != nil {
				return nil, fmt.Errorf("failed to scan developer snapshot: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating developer snapshots: %w", err)
	}
	return results, nil
}
