package schema

import "time"

// PreferenceStatus represents the status of the preferences store.
type PreferenceStatus struct {
	Backend         string    `json:"backend" yaml:"backend"`
	Connected       bool      `json:"connected" yaml:"connected"`
	TotalEntries    int       `json:"total_entries" yaml:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time" yaml:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time" yaml:"oldest_entry_time"`
}

// HistoryStatus represents the status of the snapshot history store.
type HistoryStatus struct {
	Backend         string           `json:"backend" yaml:"backend"`
	Connected       bool             `json:"connected" yaml:"connected"`
	TotalRuns       int              `json:"total_runs" yaml:"total_runs"`
	LastRunID       int64            `json:"last_run_id" yaml:"last_run_id"`
	LastRunTime     time.Time        `json:"last_run_time" yaml:"last_run_time"`
	OldestRunTime   time.Time        `json:"oldest_run_time" yaml:"oldest_run_time"`
	TotalDevelopers int              `json:"total_developers" yaml:"total_developers"`
	TableSizes      map[string]int64 `json:"table_sizes" yaml:"table_sizes"`
}
