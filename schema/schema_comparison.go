package schema

// ComparisonDetail holds one developer's base activity, target activity, and their deltas.
type ComparisonDetail struct {
	DeveloperKey   string   `json:"developer_key" yaml:"developer_key"`
	DisplayName    string   `json:"display_name" yaml:"display_name"`
	BeforeReleases int      `json:"before_releases" yaml:"before_releases"` // Releases in the base period
	AfterReleases  int      `json:"after_releases" yaml:"after_releases"`   // Releases in the target period
	Delta          int      `json:"delta" yaml:"delta"`                     // AfterReleases - BeforeReleases
	DeltaFeat      int      `json:"delta_feat" yaml:"delta_feat"`           // Change in feature releases
	DeltaFix       int      `json:"delta_fix" yaml:"delta_fix"`             // Change in fix releases
	Status         Status   `json:"status" yaml:"status"`                   // new, active or inactive across the two periods
	BeforeRepos    []string `json:"before_repos" yaml:"before_repos"`       // Repositories owned in the base period
	AfterRepos     []string `json:"after_repos" yaml:"after_repos"`         // Repositories owned in the target period
}

// ComparisonSummary has high-level deltas and counts.
type ComparisonSummary struct {
	BaseLabel   string `json:"base_label" yaml:"base_label"`
	TargetLabel string `json:"target_label" yaml:"target_label"`

	// Net release delta across the team
	NetReleaseDelta int `json:"net_release_delta" yaml:"net_release_delta"`

	// Developer status counts
	TotalNewDevelopers      int `json:"total_new_developers" yaml:"total_new_developers"`
	TotalInactiveDevelopers int `json:"total_inactive_developers" yaml:"total_inactive_developers"`
	TotalActiveDevelopers   int `json:"total_active_developers" yaml:"total_active_developers"`

	// Repositories whose owner changed between the two periods
	TotalOwnershipChanges int `json:"total_ownership_changes" yaml:"total_ownership_changes"`
}

// ComparisonResult holds the comparison details and summary.
type ComparisonResult struct {
	Details []ComparisonDetail `json:"details" yaml:"details"`
	Summary ComparisonSummary  `json:"summary" yaml:"summary"`
}
