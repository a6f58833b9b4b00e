package schema

// TypePercentages holds each release type's share of a developer's total, rounded.
type TypePercentages struct {
	Feat    int `json:"feat" yaml:"feat"`
	Fix     int `json:"fix" yaml:"fix"`
	Refacto int `json:"refacto" yaml:"refacto"`
	Chore   int `json:"chore" yaml:"chore"`
}

// DeveloperBreakdown is a developer's type breakdown with percentages.
type DeveloperBreakdown struct {
	DeveloperKey string          `json:"developer_key" yaml:"developer_key"`
	DisplayName  string          `json:"display_name" yaml:"display_name"`
	Breakdown    TypeBreakdown   `json:"breakdown" yaml:"breakdown"`
	Percentages  TypePercentages `json:"percentages" yaml:"percentages"`
}

// BugFixMatrix is a square author x fixer matrix of severity-weighted bug counts.
// Cells[i][j] is the weight of bugs authored by Developers[i] and fixed by Developers[j].
type BugFixMatrix struct {
	Developers  []string `json:"developers" yaml:"developers"` // developer keys in row/column order
	Labels      []string `json:"labels" yaml:"labels"`         // display names in row/column order
	Cells       [][]int  `json:"cells" yaml:"cells"`
	AutoFixes   int      `json:"auto_fixes" yaml:"auto_fixes"`     // bugs fixed by their author
	CrossFixes  int      `json:"cross_fixes" yaml:"cross_fixes"`   // bugs fixed by someone else
	TotalWeight int      `json:"total_weight" yaml:"total_weight"` // sum of all cells
}

// OwnershipResult is the bus factor and owner of one repository or project.
type OwnershipResult struct {
	Name          string         `json:"name" yaml:"name"`
	Scope         OwnershipScope `json:"scope" yaml:"scope"`
	TotalReleases int            `json:"total_releases" yaml:"total_releases"`
	BusFactor     int            `json:"bus_factor" yaml:"bus_factor"`
	Owner         string         `json:"owner" yaml:"owner"`             // developer key, or "shared"
	OwnerShare    float64        `json:"owner_share" yaml:"owner_share"` // top contributor share in [0, 1]
	Contributors  []Contributor  `json:"contributors" yaml:"contributors"`
	BaseBranch    string         `json:"base_branch,omitempty" yaml:"base_branch,omitempty"` // repositories only
}

// CoverageStat splits a release total into project-associated and orphan releases.
// Associated + Orphan always equals Total.
type CoverageStat struct {
	Associated int `json:"associated" yaml:"associated"`
	Orphan     int `json:"orphan" yaml:"orphan"`
	Total      int `json:"total" yaml:"total"`
	Pct        int `json:"coverage_pct" yaml:"coverage_pct"`
}

// DeveloperCoverage is one developer's coverage.
type DeveloperCoverage struct {
	DeveloperKey string `json:"developer_key" yaml:"developer_key"`
	DisplayName  string `json:"display_name" yaml:"display_name"`
	CoverageStat `yaml:",inline"`
}

// MonthlyCoverage is the coverage of one "YYYY-MM" bucket.
type MonthlyCoverage struct {
	Month        string `json:"month" yaml:"month"`
	CoverageStat `yaml:",inline"`
}

// CoverageReport holds global, per developer and monthly coverage.
type CoverageReport struct {
	Global     CoverageStat        `json:"global" yaml:"global"`
	Developers []DeveloperCoverage `json:"developers" yaml:"developers"`
	Monthly    []MonthlyCoverage   `json:"monthly" yaml:"monthly"`
}

// IncidentSummary counts incidents of one severity.
type IncidentSummary struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Count    int      `json:"count" yaml:"count"`
}

// Dashboard is every view-model derived for one period.
type Dashboard struct {
	Period           PeriodResolution     `json:"period" yaml:"period"`
	Breakdowns       []DeveloperBreakdown `json:"breakdowns" yaml:"breakdowns"`
	MonthlyTimeline  TimelineResult       `json:"monthly_timeline" yaml:"monthly_timeline"`
	SprintTimeline   TimelineResult       `json:"sprint_timeline" yaml:"sprint_timeline"`
	BugFixMatrix     BugFixMatrix         `json:"bugfix_matrix" yaml:"bugfix_matrix"`
	RepoOwnership    []OwnershipResult    `json:"repo_ownership" yaml:"repo_ownership"`
	ProjectOwnership []OwnershipResult    `json:"project_ownership" yaml:"project_ownership"`
	Coverage         CoverageReport       `json:"coverage" yaml:"coverage"`
	Quarters         []QuarterDelta       `json:"quarters" yaml:"quarters"`
	Incidents        []IncidentSummary    `json:"incidents" yaml:"incidents"`
	Releases         []Release            `json:"releases" yaml:"releases"` // releases inside the period bounds
}
