package schema

import "time"

// DeveloperSnapshot is the per-developer metrics recorded for one history snapshot.
type DeveloperSnapshot struct {
	SnapshotTime   time.Time
	DeveloperKey   string
	Releases       int
	Feat           int
	Fix            int
	Refacto        int
	Chore          int
	BugsIntroduced int
	AutoFixes      int
	CoveragePct    int
}

// SnapshotRunRecord represents a row from the shipboard_snapshot_runs table.
type SnapshotRunRecord struct {
	SnapshotID      int64
	RunTag          string
	StartTime       time.Time
	EndTime         *time.Time
	RunDurationMs   *int32
	TotalDevelopers int32
	PeriodLabel     string
	ConfigParams    *string
}

// DeveloperSnapshotRecord represents a row from the shipboard_developer_metrics table.
type DeveloperSnapshotRecord struct {
	SnapshotID     int64
	DeveloperKey   string
	SnapshotTime   time.Time
	Releases       int32
	Feat           int32
	Fix            int32
	Refacto        int32
	Chore          int32
	BugsIntroduced int32
	AutoFixes      int32
	CoveragePct    int32
}
