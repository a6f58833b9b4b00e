package schema

// Custom string types for type safety.
type (
	// ReleaseType represents the kind of change shipped by a release.
	ReleaseType string

	// Severity represents the severity of a bug or incident.
	Severity string

	// FilterMode represents the period scope selected on the board.
	FilterMode string

	// OutputMode represents the format of the output.
	OutputMode string

	// Status represents the status of a developer between two compared periods.
	Status string

	// DatabaseBackend represents the storage backend for preferences and history.
	DatabaseBackend string

	// TimelineGranularity represents how releases are bucketed on a timeline.
	TimelineGranularity string

	// OwnershipScope represents the resource kind ownership is computed for.
	OwnershipScope string
)

// All release types supported.
const (
	FeatRelease    ReleaseType = "feat"
	FixRelease     ReleaseType = "fix"
	RefactoRelease ReleaseType = "refacto"
	ChoreRelease   ReleaseType = "chore"
)

// All severities supported.
const (
	CriticalSeverity Severity = "critical"
	HighSeverity     Severity = "high"
	MediumSeverity   Severity = "medium"
	LowSeverity      Severity = "low"
)

// All filter modes supported.
const (
	AllMode    FilterMode = "all" // default
	SprintMode FilterMode = "sprint"
	RangeMode  FilterMode = "range"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	HTMLOut    OutputMode = "html"
	ParquetOut OutputMode = "parquet"
)

// All status supported.
const (
	NewStatus      Status = "new"
	ActiveStatus   Status = "active"
	InactiveStatus Status = "inactive"
	UnknownStatus  Status = "unknown"
)

// All storage backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	BoltBackend       DatabaseBackend = "bolt" // preferences only
	NoneBackend       DatabaseBackend = "none"
)

// All timeline granularities supported.
const (
	MonthlyTimeline TimelineGranularity = "monthly" // default
	SprintTimeline  TimelineGranularity = "sprint"
)

// All ownership scopes supported.
const (
	RepoScope    OwnershipScope = "repo" // default
	ProjectScope OwnershipScope = "project"
)

// SharedOwner is the owner label used when no contributor holds a majority share.
const SharedOwner = "shared"

// AllReleaseTypes lists release types in display order.
var AllReleaseTypes = []ReleaseType{FeatRelease, FixRelease, RefactoRelease, ChoreRelease}

// AllSeverities lists severities from most to least severe.
var AllSeverities = []Severity{CriticalSeverity, HighSeverity, MediumSeverity, LowSeverity}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	YAMLOut:    {},
	HTMLOut:    {},
	ParquetOut: {},
}

// ValidFilterModes lists all valid filter modes.
var ValidFilterModes = map[FilterMode]struct{}{
	AllMode:    {},
	SprintMode: {},
	RangeMode:  {},
}

// ValidPreferenceBackends lists all valid preference store backends.
var ValidPreferenceBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	BoltBackend:       {},
	NoneBackend:       {},
}

// ValidHistoryBackends lists all valid history store backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidTimelineGranularities lists all valid timeline granularities.
var ValidTimelineGranularities = map[TimelineGranularity]struct{}{
	MonthlyTimeline: {},
	SprintTimeline:  {},
}

// ValidOwnershipScopes lists all valid ownership scopes.
var ValidOwnershipScopes = map[OwnershipScope]struct{}{
	RepoScope:    {},
	ProjectScope: {},
}
