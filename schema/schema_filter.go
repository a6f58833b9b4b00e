package schema

// BoardFilter is the period scope selected by the user.
type BoardFilter struct {
	Mode     FilterMode `json:"mode" yaml:"mode"`
	SprintID *int64     `json:"sprint_id,omitempty" yaml:"sprint_id,omitempty"`
	From     string     `json:"from,omitempty" yaml:"from,omitempty"` // YYYY-MM-DD
	To       string     `json:"to,omitempty" yaml:"to,omitempty"`     // YYYY-MM-DD
}

// PeriodResolution is a BoardFilter resolved against the known sprints.
// A nil bound means the period is unbounded on that side.
type PeriodResolution struct {
	QueryParams string  `json:"query_params" yaml:"query_params"`
	From        *string `json:"from" yaml:"from"`
	To          *string `json:"to" yaml:"to"`
	Label       string  `json:"label" yaml:"label"`
}

// Unbounded reports whether neither bound is set.
func (r PeriodResolution) Unbounded() bool {
	return r.From == nil && r.To == nil
}

// ReleaseScope narrows a release listing to one sprint, developer or project.
// Zero values leave the listing unscoped on that axis.
type ReleaseScope struct {
	SprintID     *int64 `json:"sprint_id,omitempty" yaml:"sprint_id,omitempty"`
	DeveloperKey string `json:"developer_key,omitempty" yaml:"developer_key,omitempty"`
	ProjectID    *int64 `json:"project_id,omitempty" yaml:"project_id,omitempty"`
}
