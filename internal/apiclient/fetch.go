package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/huangsam/shipboard/schema"
)

// Backend resource paths.
const (
	developersPath     = "/developers"
	teamMonthlyPath    = "/team-monthly"
	teamSprintPath     = "/team-sprint"
	bugFixesPath       = "/bugfixes"
	projectsPath       = "/projects"
	projectQualityPath = "/project-quality"
	incidentsPath      = "/incidents"
	baseBranchesPath   = "/base-branches"
	sprintsPath        = "/sprints"
	repoMatrixPath     = "/repo-matrix"
	releasesPath       = "/releases"
)

// FetchDevelopers implements the Fetcher interface.
func (c *Client) FetchDevelopers(ctx context.Context, query string) ([]schema.DeveloperProfile, error) {
	return getJSON[schema.DeveloperProfile](ctx, c, developersPath, query)
}

// FetchTeamMonthly implements the Fetcher interface.
func (c *Client) FetchTeamMonthly(ctx context.Context, query string) ([]schema.TeamMonthlyRow, error) {
	return getJSON[schema.TeamMonthlyRow](ctx, c, teamMonthlyPath, query)
}

// FetchTeamSprint implements the Fetcher interface.
func (c *Client) FetchTeamSprint(ctx context.Context, query string) ([]schema.TeamSprintRow, error) {
	return getJSON[schema.TeamSprintRow](ctx, c, teamSprintPath, query)
}

// FetchBugFixes implements the Fetcher interface.
func (c *Client) FetchBugFixes(ctx context.Context, query string) ([]schema.BugFixDetail, error) {
	return getJSON[schema.BugFixDetail](ctx, c, bugFixesPath, query)
}

// FetchIncidents implements the Fetcher interface.
func (c *Client) FetchIncidents(ctx context.Context, query string) ([]schema.Incident, error) {
	return getJSON[schema.Incident](ctx, c, incidentsPath, query)
}

// FetchProjects implements the Fetcher interface.
func (c *Client) FetchProjects(ctx context.Context, query string) ([]schema.Project, error) {
	return getJSON[schema.Project](ctx, c, projectsPath, query)
}

// FetchProjectQuality implements the Fetcher interface.
func (c *Client) FetchProjectQuality(ctx context.Context, query string) ([]schema.ProjectQuality, error) {
	return getJSON[schema.ProjectQuality](ctx, c, projectQualityPath, query)
}

// FetchBaseBranches implements the Fetcher interface.
func (c *Client) FetchBaseBranches(ctx context.Context, query string) ([]schema.BaseBranch, error) {
	return getJSON[schema.BaseBranch](ctx, c, baseBranchesPath, query)
}

// FetchRepoMatrix implements the Fetcher interface.
func (c *Client) FetchRepoMatrix(ctx context.Context, query string) ([]schema.RepoMatrixEntry, error) {
	return getJSON[schema.RepoMatrixEntry](ctx, c, repoMatrixPath, query)
}

// FetchSprints implements the Fetcher interface. Sprints are never period-scoped.
func (c *Client) FetchSprints(ctx context.Context) ([]schema.Sprint, error) {
	return getJSON[schema.Sprint](ctx, c, sprintsPath, "")
}

// FetchReleases implements the Fetcher interface.
func (c *Client) FetchReleases(ctx context.Context, scope schema.ReleaseScope, query string) ([]schema.Release, error) {
	merged, err := MergeScope(query, scope)
	if err != nil {
		return nil, err
	}
	return getJSON[schema.Release](ctx, c, releasesPath, merged)
}

// MergeScope adds the release scope to a period query suffix. Scope values replace
// period values of the same name. The result is "" or starts with "?".
func MergeScope(query string, scope schema.ReleaseScope) (string, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return "", fmt.Errorf("invalid query %q: %w", query, err)
	}
	if scope.SprintID != nil {
		values.Set("sprint_id", strconv.FormatInt(*scope.SprintID, 10))
	}
	if scope.DeveloperKey != "" {
		values.Set("developer_key", scope.DeveloperKey)
	}
	if scope.ProjectID != nil {
		values.Set("project_id", strconv.FormatInt(*scope.ProjectID, 10))
	}
	if len(values) == 0 {
		return "", nil
	}
	return "?" + values.Encode(), nil
}

// summaryResponse is the body returned by the generate-summary action.
type summaryResponse struct {
	AISummary string `json:"ai_summary"`
}

// GenerateSummary implements the Fetcher interface.
func (c *Client) GenerateSummary(ctx context.Context, projectID int64) (string, error) {
	var resp summaryResponse
	path := fmt.Sprintf("%s/%d/generate-summary", projectsPath, projectID)
	if err := c.do(ctx, http.MethodPost, path, "", nil, &resp); err != nil {
		return "", err
	}
	return resp.AISummary, nil
}
