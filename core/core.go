// Package core has core logic for fetching, deriving and presenting delivery metrics.
package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/huangsam/shipboard/core/algo"
	"github.com/huangsam/shipboard/core/period"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Services bundles the collaborators every executor needs.
type Services struct {
	Fetcher contract.Fetcher
	Admin   contract.AdminClient
	Stores  contract.StoreManager
	Writer  contract.OutputWriter
	Logger  logrus.FieldLogger
}

// ExecutorFunc defines the function signature for executing the different views.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, svc Services) error

// preferenceStore returns the configured preferences store, or nil without one.
func (svc Services) preferenceStore() contract.PreferencesStore {
	if svc.Stores == nil {
		return nil
	}
	return svc.Stores.GetPreferenceStore()
}

// NewFilterState builds the filter state for a command run.
// Explicit period flags win and are remembered as the last choice. Without flags the saved
// filter applies when requested. Otherwise cfg.Filter (all-time by default) applies without
// touching the saved one.
func NewFilterState(cfg *contract.Config, svc Services) (*period.FilterState, error) {
	switch {
	case cfg.FilterExplicit:
		state := period.NewFilterState(svc.preferenceStore(), svc.Logger)
		state.Hydrate()
		if err := state.Set(cfg.Filter); err != nil {
			return nil, err
		}
		return state, nil
	case cfg.UseSavedFilter:
		state := period.NewFilterState(svc.preferenceStore(), svc.Logger)
		state.Hydrate()
		return state, nil
	default:
		filter := cfg.Filter
		if filter.Mode == "" {
			filter = schema.BoardFilter{Mode: schema.AllMode}
		}
		state := period.NewFilterState(nil, svc.Logger)
		if err := state.Set(filter); err != nil {
			return nil, err
		}
		return state, nil
	}
}

// runBoard refreshes a board for the configured filter and records a history snapshot.
func runBoard(ctx context.Context, cfg *contract.Config, svc Services) (*Board, schema.Dashboard, error) {
	start := time.Now()

	state, err := NewFilterState(cfg, svc)
	if err != nil {
		return nil, schema.Dashboard{}, err
	}

	board := NewBoard(svc.Fetcher, state, svc.Logger, DashboardOptions{OwnershipLimit: cfg.Limit})
	dashboard, err := board.Refresh(ctx)
	if err != nil {
		return nil, schema.Dashboard{}, err
	}

	if !shouldSuppressHeader(ctx) {
		svc.Writer.LogHeader(dashboard.Period, cfg)
	}

	if data, ok := board.Data(); ok {
		recordSnapshot(ctx, cfg, svc.Stores, dashboard, ScopeData(data, dashboard.Period), start)
	}
	return board, dashboard, nil
}

// GetDashboard refreshes a board for the configured filter and returns the derived views
// without printing them.
func GetDashboard(ctx context.Context, cfg *contract.Config, svc Services) (schema.Dashboard, error) {
	_, dashboard, err := runBoard(ctx, cfg, svc)
	return dashboard, err
}

// ExecuteDevelopers prints the type breakdown of the most active developers.
func ExecuteDevelopers(ctx context.Context, cfg *contract.Config, svc Services) error {
	start := time.Now()
	_, dashboard, err := runBoard(ctx, cfg, svc)
	if err != nil {
		return err
	}
	ranked := algo.RankBreakdowns(slices.Clone(dashboard.Breakdowns), cfg.Limit)
	return svc.Writer.WriteBreakdowns(ranked, cfg, time.Since(start))
}

// ExecuteTimeline prints the cumulative monthly or sprint timeline.
func ExecuteTimeline(ctx context.Context, cfg *contract.Config, svc Services) error {
	start := time.Now()
	_, dashboard, err := runBoard(ctx, cfg, svc)
	if err != nil {
		return err
	}
	timeline := dashboard.MonthlyTimeline
	if cfg.Granularity == schema.SprintTimeline {
		timeline = dashboard.SprintTimeline
	}
	return svc.Writer.WriteTimeline(timeline, cfg, time.Since(start))
}

// ExecuteBugFix prints the severity-weighted author x fixer matrix.
func ExecuteBugFix(ctx context.Context, cfg *contract.Config, svc Services) error {
	start := time.Now()
	_, dashboard, err := runBoard(ctx, cfg, svc)
	if err != nil {
		return err
	}
	return svc.Writer.WriteBugFixMatrix(dashboard.BugFixMatrix, cfg, time.Since(start))
}

// ExecuteOwnership prints bus factor and owner per repository or project.
func ExecuteOwnership(ctx context.Context, cfg *contract.Config, svc Services) error {
	start := time.Now()
	_, dashboard, err := runBoard(ctx, cfg, svc)
	if err != nil {
		return err
	}
	results := dashboard.RepoOwnership
	if cfg.OwnershipScope == schema.ProjectScope {
		results = dashboard.ProjectOwnership
	}
	return svc.Writer.WriteOwnership(results, cfg, time.Since(start))
}

// ExecuteCoverage prints global, per developer and monthly project coverage.
func ExecuteCoverage(ctx context.Context, cfg *contract.Config, svc Services) error {
	start := time.Now()
	_, dashboard, err := runBoard(ctx, cfg, svc)
	if err != nil {
		return err
	}
	return svc.Writer.WriteCoverage(dashboard.Coverage, cfg, time.Since(start))
}

// ExecuteQuarters prints release totals per quarter with quarter-over-quarter deltas.
func ExecuteQuarters(ctx context.Context, cfg *contract.Config, svc Services) error {
	start := time.Now()
	_, dashboard, err := runBoard(ctx, cfg, svc)
	if err != nil {
		return err
	}
	return svc.Writer.WriteQuarters(dashboard.Quarters, cfg, time.Since(start))
}

// GetIncidents returns the incidents of the period, capped by the limit, with the counts
// per severity of all of them.
func GetIncidents(ctx context.Context, cfg *contract.Config, svc Services) ([]schema.Incident, []schema.IncidentSummary, error) {
	board, dashboard, err := runBoard(ctx, cfg, svc)
	if err != nil {
		return nil, nil, err
	}
	data, _ := board.Data()
	incidents := ScopeData(data, dashboard.Period).Incidents
	if cfg.Limit > 0 && len(incidents) > cfg.Limit {
		incidents = incidents[:cfg.Limit]
	}
	return incidents, dashboard.Incidents, nil
}

// ExecuteIncidents prints incidents of the period with counts per severity.
func ExecuteIncidents(ctx context.Context, cfg *contract.Config, svc Services) error {
	start := time.Now()
	incidents, summary, err := GetIncidents(ctx, cfg, svc)
	if err != nil {
		return err
	}
	return svc.Writer.WriteIncidents(incidents, summary, cfg, time.Since(start))
}

// ExecuteDashboard prints every view of the period at once.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config, svc Services) error {
	start := time.Now()
	_, dashboard, err := runBoard(ctx, cfg, svc)
	if err != nil {
		return err
	}
	return svc.Writer.WriteDashboard(dashboard, cfg, time.Since(start))
}

// GetComparison compares per-developer release activity between the base and target ranges.
func GetComparison(ctx context.Context, cfg *contract.Config, svc Services) (schema.ComparisonResult, error) {
	if !cfg.CompareMode {
		return schema.ComparisonResult{}, errors.New("base and target ranges must be provided")
	}

	baseRes := period.Resolve(cfg.CompareBase, nil)
	targetRes := period.Resolve(cfg.CompareTarget, nil)

	var profiles []schema.DeveloperProfile
	var baseReleases, targetReleases []schema.Release
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profiles, err = svc.Fetcher.FetchDevelopers(gctx, "")
		return wrapFetch("developers", err)
	})
	g.Go(func() (err error) {
		baseReleases, err = svc.Fetcher.FetchReleases(gctx, schema.ReleaseScope{}, baseRes.QueryParams)
		return wrapFetch("base releases", err)
	})
	g.Go(func() (err error) {
		targetReleases, err = svc.Fetcher.FetchReleases(gctx, schema.ReleaseScope{}, targetRes.QueryParams)
		return wrapFetch("target releases", err)
	})
	if err := g.Wait(); err != nil {
		return schema.ComparisonResult{}, err
	}

	return CompareDevelopers(
		FilterReleases(baseReleases, baseRes),
		FilterReleases(targetReleases, targetRes),
		schema.DisplayNames(profiles),
		cfg.Limit,
		baseRes.Label,
		targetRes.Label,
	), nil
}

// ExecuteCompare prints the per-developer comparison between the base and target ranges.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, svc Services) error {
	start := time.Now()
	result, err := GetComparison(ctx, cfg, svc)
	if err != nil {
		return err
	}
	return svc.Writer.WriteComparison(result, cfg, time.Since(start))
}

// GetProjectSummary asks the backend to summarize a project and returns the project with
// the summary merged in. An unknown project still carries its ID and the summary.
func GetProjectSummary(ctx context.Context, svc Services, projectID int64) (schema.Project, error) {
	summary, err := svc.Fetcher.GenerateSummary(ctx, projectID)
	if err != nil {
		return schema.Project{}, fmt.Errorf("generate summary for project %d: %w", projectID, err)
	}

	projects, err := svc.Fetcher.FetchProjects(ctx, "")
	if err != nil {
		return schema.Project{}, wrapFetch("projects", err)
	}
	merged, found := MergeSummary(projects, projectID, summary)
	if found {
		for _, p := range merged {
			if p.ID == projectID {
				return p, nil
			}
		}
	}
	return schema.Project{ID: projectID, AISummary: summary}, nil
}

// ExecuteProjectSummary prints the summarized project.
func ExecuteProjectSummary(ctx context.Context, cfg *contract.Config, svc Services, projectID int64) error {
	project, err := GetProjectSummary(ctx, svc, projectID)
	if err != nil {
		return err
	}
	return svc.Writer.WriteProjectSummary(project, cfg)
}

// ResolvePeriod resolves the filter of a run against the sprint calendar without fetching
// any period-scoped data.
func ResolvePeriod(ctx context.Context, cfg *contract.Config, svc Services) (schema.BoardFilter, schema.PeriodResolution, error) {
	state, err := NewFilterState(cfg, svc)
	if err != nil {
		return schema.BoardFilter{}, schema.PeriodResolution{}, err
	}
	filter, err := state.Current()
	if err != nil {
		return schema.BoardFilter{}, schema.PeriodResolution{}, err
	}
	sprints, err := svc.Fetcher.FetchSprints(ctx)
	if err != nil {
		return schema.BoardFilter{}, schema.PeriodResolution{}, wrapFetch("sprints", err)
	}
	return filter, period.Resolve(filter, sprints), nil
}

// ExecuteFilterShow prints the saved board filter and its resolution.
func ExecuteFilterShow(ctx context.Context, cfg *contract.Config, svc Services) error {
	state := period.NewFilterState(svc.preferenceStore(), svc.Logger)
	filter := state.Hydrate()
	return writeFilter(ctx, cfg, svc, filter)
}

// ExecuteFilterSet saves the filter given by the period flags.
func ExecuteFilterSet(ctx context.Context, cfg *contract.Config, svc Services) error {
	if !cfg.FilterExplicit {
		return errors.New("no period flags given: use --mode, --sprint-id, --from or --to")
	}
	state := period.NewFilterState(svc.preferenceStore(), svc.Logger)
	state.Hydrate()
	if err := state.Set(cfg.Filter); err != nil {
		return err
	}
	return writeFilter(ctx, cfg, svc, cfg.Filter)
}

// ExecuteFilterClear resets the saved filter to all-time.
func ExecuteFilterClear(ctx context.Context, cfg *contract.Config, svc Services) error {
	state := period.NewFilterState(svc.preferenceStore(), svc.Logger)
	state.Hydrate()
	state.Clear()
	return writeFilter(ctx, cfg, svc, schema.BoardFilter{Mode: schema.AllMode})
}

// writeFilter resolves a filter against the sprint calendar for display.
// Sprints are only fetched for sprint filters, and a failed lookup still prints the filter.
func writeFilter(ctx context.Context, cfg *contract.Config, svc Services, filter schema.BoardFilter) error {
	var sprints []schema.Sprint
	if filter.Mode == schema.SprintMode && svc.Fetcher != nil {
		var err error
		if sprints, err = svc.Fetcher.FetchSprints(ctx); err != nil {
			contract.LogWarn("Could not load sprints to resolve the filter", err)
		}
	}
	return svc.Writer.WriteFilter(filter, period.Resolve(filter, sprints), cfg)
}
