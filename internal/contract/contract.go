// Package contract provides interfaces and shared utilities for the internal architecture of shipboard.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/shipboard/schema"
)

// Fetcher defines the read operations against the delivery-metrics backend.
// Every period-scoped method takes the query suffix produced by the period resolver.
// This allows the derivation logic to be tested without a running backend.
type Fetcher interface {
	// --- Developers ---

	// FetchDevelopers returns every developer profile for the period.
	FetchDevelopers(ctx context.Context, query string) ([]schema.DeveloperProfile, error)

	// FetchTeamMonthly returns per-developer release counts grouped by month.
	FetchTeamMonthly(ctx context.Context, query string) ([]schema.TeamMonthlyRow, error)

	// FetchTeamSprint returns per-developer release counts grouped by sprint.
	FetchTeamSprint(ctx context.Context, query string) ([]schema.TeamSprintRow, error)

	// --- Quality ---

	// FetchBugFixes returns every bug-fix link for the period.
	FetchBugFixes(ctx context.Context, query string) ([]schema.BugFixDetail, error)

	// FetchIncidents returns every incident for the period.
	FetchIncidents(ctx context.Context, query string) ([]schema.Incident, error)

	// --- Projects / Repositories ---

	// FetchProjects returns projects together with their associated releases.
	FetchProjects(ctx context.Context, query string) ([]schema.Project, error)

	// FetchProjectQuality returns the per-project delivery rollups.
	FetchProjectQuality(ctx context.Context, query string) ([]schema.ProjectQuality, error)

	// FetchBaseBranches returns the tracked base branch of each repository.
	FetchBaseBranches(ctx context.Context, query string) ([]schema.BaseBranch, error)

	// FetchRepoMatrix returns per-repository, per-developer release counts.
	FetchRepoMatrix(ctx context.Context, query string) ([]schema.RepoMatrixEntry, error)

	// FetchReleases returns releases, optionally narrowed by scope.
	FetchReleases(ctx context.Context, scope schema.ReleaseScope, query string) ([]schema.Release, error)

	// --- Sprints ---

	// FetchSprints returns the sprint calendar. It is never period-scoped.
	FetchSprints(ctx context.Context) ([]schema.Sprint, error)

	// --- Actions ---

	// GenerateSummary asks the backend to summarize a project and returns the summary text.
	GenerateSummary(ctx context.Context, projectID int64) (string, error)
}

// AdminClient defines the generic table editor contract of the backend.
type AdminClient interface {
	List(ctx context.Context, table string) ([]schema.Row, error)
	Create(ctx context.Context, table string, row schema.Row) (schema.Row, error)
	Update(ctx context.Context, table string, id string, row schema.Row) (schema.Row, error)
	Remove(ctx context.Context, table string, id string) error
}

// OutputWriter renders derived views in the configured output format.
// This allows the orchestration in core to be tested without touching stdout.
type OutputWriter interface {
	// LogHeader prints a short header describing the resolved period
	LogHeader(res schema.PeriodResolution, cfg *Config)

	WriteBreakdowns(breakdowns []schema.DeveloperBreakdown, cfg *Config, duration time.Duration) error
	WriteTimeline(result schema.TimelineResult, cfg *Config, duration time.Duration) error
	WriteBugFixMatrix(matrix schema.BugFixMatrix, cfg *Config, duration time.Duration) error
	WriteOwnership(results []schema.OwnershipResult, cfg *Config, duration time.Duration) error
	WriteCoverage(report schema.CoverageReport, cfg *Config, duration time.Duration) error
	WriteQuarters(quarters []schema.QuarterDelta, cfg *Config, duration time.Duration) error
	WriteIncidents(incidents []schema.Incident, summary []schema.IncidentSummary, cfg *Config, duration time.Duration) error
	WriteDashboard(dashboard schema.Dashboard, cfg *Config, duration time.Duration) error
	WriteComparison(result schema.ComparisonResult, cfg *Config, duration time.Duration) error
	WriteProjectSummary(project schema.Project, cfg *Config) error
	WriteFilter(filter schema.BoardFilter, res schema.PeriodResolution, cfg *Config) error
	WriteAdminRows(table string, rows []schema.Row, cfg *Config) error
}

// StoreManager defines the interface for managing the local stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetPreferenceStore() PreferencesStore
	GetHistoryStore() HistoryStore
}

// PreferencesStore defines durable, best-effort storage for UI preferences.
type PreferencesStore interface {
	// Load returns the value stored under key. found is false when nothing was saved.
	Load(key string) (value []byte, found bool, err error)

	// Save stores value under key, replacing any previous value.
	Save(key string, value []byte) error

	// GetStatus returns status information about the preferences store
	GetStatus() (schema.PreferenceStatus, error)

	// Close closes the underlying connection
	Close() error
}

// HistoryStore defines the interface for tracking snapshot runs and storing developer metrics.
type HistoryStore interface {
	// BeginSnapshot creates a new snapshot run and returns its unique ID
	BeginSnapshot(startTime time.Time, periodLabel string, configParams map[string]any) (int64, error)

	// EndSnapshot updates the snapshot run with completion data
	EndSnapshot(snapshotID int64, endTime time.Time, totalDevelopers int) error

	// RecordDeveloperSnapshot stores the metrics of one developer
	RecordDeveloperSnapshot(snapshotID int64, snapshot schema.DeveloperSnapshot) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllSnapshotRuns returns every recorded snapshot run
	GetAllSnapshotRuns() ([]schema.SnapshotRunRecord, error)

	// GetAllDeveloperSnapshots returns every recorded developer row
	GetAllDeveloperSnapshots() ([]schema.DeveloperSnapshotRecord, error)

	// Close closes the underlying connection
	Close() error
}
