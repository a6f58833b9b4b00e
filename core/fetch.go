package core

import (
	"context"
	"fmt"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"golang.org/x/sync/errgroup"
)

// FetchDashboardData retrieves every period-scoped collection concurrently.
// The first failure cancels the remaining requests and is returned.
// Sprints are not period-scoped and are left for the caller to fetch.
func FetchDashboardData(ctx context.Context, fetcher contract.Fetcher, query string) (*schema.DashboardData, error) {
	data := &schema.DashboardData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		data.Developers, err = fetcher.FetchDevelopers(gctx, query)
		return wrapFetch("developers", err)
	})
	g.Go(func() (err error) {
		data.TeamMonthly, err = fetcher.FetchTeamMonthly(gctx, query)
		return wrapFetch("team-monthly", err)
	})
	g.Go(func() (err error) {
		data.TeamSprint, err = fetcher.FetchTeamSprint(gctx, query)
		return wrapFetch("team-sprint", err)
	})
	g.Go(func() (err error) {
		data.BugFixes, err = fetcher.FetchBugFixes(gctx, query)
		return wrapFetch("bugfixes", err)
	})
	g.Go(func() (err error) {
		data.Projects, err = fetcher.FetchProjects(gctx, query)
		return wrapFetch("projects", err)
	})
	g.Go(func() (err error) {
		data.ProjectQuality, err = fetcher.FetchProjectQuality(gctx, query)
		return wrapFetch("project-quality", err)
	})
	g.Go(func() (err error) {
		data.Incidents, err = fetcher.FetchIncidents(gctx, query)
		return wrapFetch("incidents", err)
	})
	g.Go(func() (err error) {
		data.BaseBranches, err = fetcher.FetchBaseBranches(gctx, query)
		return wrapFetch("base-branches", err)
	})
	g.Go(func() (err error) {
		data.RepoMatrix, err = fetcher.FetchRepoMatrix(gctx, query)
		return wrapFetch("repo-matrix", err)
	})
	g.Go(func() (err error) {
		data.Releases, err = fetcher.FetchReleases(gctx, schema.ReleaseScope{}, query)
		return wrapFetch("releases", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func wrapFetch(resource string, err error) error {
	if err != nil {
		return fmt.Errorf("fetch %s: %w", resource, err)
	}
	return nil
}
