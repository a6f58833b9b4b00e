// Package schema has entities, view-models and enums for all parts of shipboard.
package schema

// Release is a single shipped version of a repository.
type Release struct {
	ID             int64       `json:"id" yaml:"id"`
	Version        string      `json:"version" yaml:"version"`
	ReleaseDate    string      `json:"release_date" yaml:"release_date"` // YYYY-MM-DD
	ReleaseType    ReleaseType `json:"release_type" yaml:"release_type"`
	DeveloperKey   string      `json:"developer_key" yaml:"developer_key"`
	RepositoryName string      `json:"repository_name" yaml:"repository_name"`
	ChangesText    string      `json:"changes_text" yaml:"changes_text"`
	IsRollback     bool        `json:"is_rollback" yaml:"is_rollback"`
}

// TypeBreakdown holds raw release counts per release type.
// Total is always Feat+Fix+Refacto+Chore.
type TypeBreakdown struct {
	Feat    int `json:"feat" yaml:"feat"`
	Fix     int `json:"fix" yaml:"fix"`
	Refacto int `json:"refacto" yaml:"refacto"`
	Chore   int `json:"chore" yaml:"chore"`
	Total   int `json:"total" yaml:"total"`
}

// QualityStats aggregates bug and rollback activity for one developer.
type QualityStats struct {
	BugsIntroduced    int              `json:"bugs_introduced" yaml:"bugs_introduced"`
	Rollbacks         int              `json:"rollbacks" yaml:"rollbacks"`
	AvgTimeToFixDays  float64          `json:"avg_time_to_fix_days" yaml:"avg_time_to_fix_days"`
	FixesForOthers    map[string]int   `json:"fixes_for_others" yaml:"fixes_for_others"`
	FixedByOthers     map[string]int   `json:"fixed_by_others" yaml:"fixed_by_others"`
	SeverityBreakdown map[Severity]int `json:"severity_breakdown" yaml:"severity_breakdown"`
	TotalImpactUsers  int              `json:"total_impact_users" yaml:"total_impact_users"`
}

// DeveloperProfile describes one developer and their precomputed stats.
type DeveloperProfile struct {
	DeveloperKey  string        `json:"developer_key" yaml:"developer_key"`
	DisplayName   string        `json:"display_name" yaml:"display_name"`
	Color         string        `json:"color" yaml:"color"`
	Repos         []string      `json:"repos" yaml:"repos"`
	Themes        []string      `json:"themes" yaml:"themes"`
	TypeBreakdown TypeBreakdown `json:"type_breakdown" yaml:"type_breakdown"`
	QualityStats  QualityStats  `json:"quality_stats" yaml:"quality_stats"`
}

// BugFixDetail links a bugged release to the release that fixed it.
type BugFixDetail struct {
	ID              int64    `json:"id" yaml:"id"`
	BuggedReleaseID int64    `json:"bugged_release_id" yaml:"bugged_release_id"`
	BuggedVersion   string   `json:"bugged_version" yaml:"bugged_version"`
	BuggedRepo      string   `json:"bugged_repo" yaml:"bugged_repo"`
	BuggedDate      string   `json:"bugged_date" yaml:"bugged_date"`
	AuthorKey       string   `json:"author_key" yaml:"author_key"`
	FixReleaseID    int64    `json:"fix_release_id" yaml:"fix_release_id"`
	FixVersion      string   `json:"fix_version" yaml:"fix_version"`
	FixRepo         string   `json:"fix_repo" yaml:"fix_repo"`
	FixDate         string   `json:"fix_date" yaml:"fix_date"`
	FixerKey        string   `json:"fixer_key" yaml:"fixer_key"`
	Severity        Severity `json:"severity" yaml:"severity"`
	DaysToFix       *int     `json:"days_to_fix" yaml:"days_to_fix"`
	ImpactUsers     int      `json:"impact_users" yaml:"impact_users"`
	ProjectIDs      []int64  `json:"project_ids" yaml:"project_ids"`
}

// IsAutoFix reports whether the bug was fixed by its own author.
func (b BugFixDetail) IsAutoFix() bool {
	return b.AuthorKey == b.FixerKey
}

// ProjectRelease is a release as seen through its project association.
type ProjectRelease struct {
	ReleaseID      int64  `json:"release_id" yaml:"release_id"`
	Version        string `json:"version" yaml:"version"`
	ReleaseDate    string `json:"release_date" yaml:"release_date"`
	DeveloperKey   string `json:"developer_key" yaml:"developer_key"`
	RepositoryName string `json:"repository_name" yaml:"repository_name"`
}

// Project is a tracked initiative that releases can be associated with.
type Project struct {
	ID        int64            `json:"id" yaml:"id"`
	Name      string           `json:"name" yaml:"name"`
	IsRoadmap bool             `json:"is_roadmap" yaml:"is_roadmap"`
	Type      string           `json:"type" yaml:"type"`
	Impact    string           `json:"impact" yaml:"impact"`
	Releases  []ProjectRelease `json:"releases" yaml:"releases"`
	Leads     []string         `json:"leads" yaml:"leads"`
	AISummary string           `json:"ai_summary" yaml:"ai_summary"`
}

// Contributor is a (developer, release count) pair within a repo or project.
type Contributor struct {
	DeveloperKey string `json:"developer_key" yaml:"developer_key"`
	ReleaseCount int    `json:"release_count" yaml:"release_count"`
}

// ProjectQuality is the backend rollup of a project's delivery.
type ProjectQuality struct {
	ProjectID        int64         `json:"project_id" yaml:"project_id"`
	ProjectName      string        `json:"project_name" yaml:"project_name"`
	TotalReleases    int           `json:"total_releases" yaml:"total_releases"`
	TotalBugs        int           `json:"total_bugs" yaml:"total_bugs"`
	Contributors     []Contributor `json:"contributors" yaml:"contributors"`
	FirstReleaseDate string        `json:"first_release_date" yaml:"first_release_date"`
	LastReleaseDate  string        `json:"last_release_date" yaml:"last_release_date"`
}

// Sprint is a fixed, sequential time bucket ordered by Number.
type Sprint struct {
	ID        int64  `json:"id" yaml:"id"`
	Number    int    `json:"number" yaml:"number"`
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`
}

// Incident is a production incident attributed to a developer.
type Incident struct {
	ID           int64    `json:"id" yaml:"id"`
	Date         string   `json:"date" yaml:"date"`
	DeveloperKey string   `json:"developer_key" yaml:"developer_key"`
	Severity     Severity `json:"severity" yaml:"severity"`
	Description  string   `json:"description" yaml:"description"`
	Lesson       string   `json:"lesson" yaml:"lesson"`
}

// TeamMonthlyRow is one developer's release count for one month.
type TeamMonthlyRow struct {
	Month     string `json:"month" yaml:"month"` // YYYY-MM
	Developer string `json:"developer" yaml:"developer"`
	Releases  int    `json:"releases" yaml:"releases"`
}

// TeamSprintRow is one developer's release count for one sprint.
type TeamSprintRow struct {
	SprintNumber int    `json:"sprint_number" yaml:"sprint_number"`
	Developer    string `json:"developer" yaml:"developer"`
	Releases     int    `json:"releases" yaml:"releases"`
}

// RepoMatrixEntry is one developer's release count within one repository.
type RepoMatrixEntry struct {
	RepositoryName string `json:"repository_name" yaml:"repository_name"`
	DeveloperKey   string `json:"developer_key" yaml:"developer_key"`
	ReleaseCount   int    `json:"release_count" yaml:"release_count"`
}

// BaseBranch is the default branch tracked for a repository.
type BaseBranch struct {
	RepositoryName string `json:"repository_name" yaml:"repository_name"`
	Branch         string `json:"branch" yaml:"branch"`
}

// DashboardData is the full set of raw collections fetched for one board refresh.
type DashboardData struct {
	Developers     []DeveloperProfile `json:"developers" yaml:"developers"`
	TeamMonthly    []TeamMonthlyRow   `json:"team_monthly" yaml:"team_monthly"`
	TeamSprint     []TeamSprintRow    `json:"team_sprint" yaml:"team_sprint"`
	BugFixes       []BugFixDetail     `json:"bugfixes" yaml:"bugfixes"`
	Projects       []Project          `json:"projects" yaml:"projects"`
	ProjectQuality []ProjectQuality   `json:"project_quality" yaml:"project_quality"`
	Incidents      []Incident         `json:"incidents" yaml:"incidents"`
	BaseBranches   []BaseBranch       `json:"base_branches" yaml:"base_branches"`
	Sprints        []Sprint           `json:"sprints" yaml:"sprints"`
	RepoMatrix     []RepoMatrixEntry  `json:"repo_matrix" yaml:"repo_matrix"`
	Releases       []Release          `json:"releases" yaml:"releases"`
}

// Row is a raw admin table row as exchanged with the admin CRUD endpoints.
type Row map[string]any
