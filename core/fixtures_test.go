package core

import (
	"github.com/huangsam/shipboard/internal/apiclient"
	"github.com/huangsam/shipboard/schema"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

func quietLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func fixtureSprints() []schema.Sprint {
	return []schema.Sprint{
		{ID: 3, Number: 7, StartDate: "2024-02-01", EndDate: "2024-02-14"},
		{ID: 4, Number: 8, StartDate: "2024-02-15", EndDate: "2024-02-28"},
	}
}

// fixtureData is a small team: Alice has a profile breakdown, Bob is counted from releases.
func fixtureData() schema.DashboardData {
	return schema.DashboardData{
		Developers: []schema.DeveloperProfile{
			{DeveloperKey: "bob", DisplayName: "Bob Martin"},
			{DeveloperKey: "alice", DisplayName: "Alice Chen", TypeBreakdown: schema.TypeBreakdown{Feat: 2, Fix: 1}},
		},
		TeamSprint: []schema.TeamSprintRow{
			{SprintNumber: 7, Developer: "Alice Chen", Releases: 1},
			{SprintNumber: 8, Developer: "Bob Martin", Releases: 1},
		},
		BugFixes: []schema.BugFixDetail{
			{ID: 1, AuthorKey: "alice", FixerKey: "alice", Severity: schema.CriticalSeverity},
			{ID: 2, AuthorKey: "alice", FixerKey: "bob", Severity: schema.HighSeverity},
		},
		Projects: []schema.Project{
			{ID: 1, Name: "Checkout", Releases: []schema.ProjectRelease{{ReleaseID: 1}, {ReleaseID: 3}}},
		},
		ProjectQuality: []schema.ProjectQuality{
			{ProjectID: 1, ProjectName: "Checkout", Contributors: []schema.Contributor{
				{DeveloperKey: "alice", ReleaseCount: 1},
				{DeveloperKey: "bob", ReleaseCount: 1},
			}},
		},
		Incidents: []schema.Incident{
			{ID: 1, Date: "2024-02-02", DeveloperKey: "alice", Severity: schema.HighSeverity},
			{ID: 2, Date: "2024-02-10", DeveloperKey: "bob", Severity: schema.LowSeverity},
			{ID: 3, Date: "2024-04-03", DeveloperKey: "alice", Severity: schema.HighSeverity},
		},
		Releases: []schema.Release{
			{ID: 1, ReleaseDate: "2024-01-10", ReleaseType: schema.FeatRelease, DeveloperKey: "alice", RepositoryName: "api"},
			{ID: 2, ReleaseDate: "2024-02-05", ReleaseType: schema.FixRelease, DeveloperKey: "alice", RepositoryName: "api"},
			{ID: 3, ReleaseDate: "2024-02-20", ReleaseType: schema.FeatRelease, DeveloperKey: "bob", RepositoryName: "web"},
			{ID: 4, ReleaseDate: "2024-04-02", ReleaseType: schema.FeatRelease, DeveloperKey: "alice", RepositoryName: "api"},
			{ID: 5, ReleaseType: schema.ChoreRelease, DeveloperKey: "bob", RepositoryName: "web"},
		},
	}
}

// stubCollections answers every period-scoped call except developers with the fixture data.
func stubCollections(f *apiclient.MockFetcher, data schema.DashboardData) {
	f.On("FetchTeamMonthly", mock.Anything, mock.Anything).Return(data.TeamMonthly, nil)
	f.On("FetchTeamSprint", mock.Anything, mock.Anything).Return(data.TeamSprint, nil)
	f.On("FetchBugFixes", mock.Anything, mock.Anything).Return(data.BugFixes, nil)
	f.On("FetchProjects", mock.Anything, mock.Anything).Return(data.Projects, nil)
	f.On("FetchProjectQuality", mock.Anything, mock.Anything).Return(data.ProjectQuality, nil)
	f.On("FetchIncidents", mock.Anything, mock.Anything).Return(data.Incidents, nil)
	f.On("FetchBaseBranches", mock.Anything, mock.Anything).Return(data.BaseBranches, nil)
	f.On("FetchRepoMatrix", mock.Anything, mock.Anything).Return(data.RepoMatrix, nil)
	f.On("FetchReleases", mock.Anything, mock.Anything, mock.Anything).Return(data.Releases, nil)
}

// fixtureFetcher answers every call with the fixture data.
func fixtureFetcher() *apiclient.MockFetcher {
	data := fixtureData()
	f := &apiclient.MockFetcher{}
	f.On("FetchSprints", mock.Anything).Return(fixtureSprints(), nil)
	f.On("FetchDevelopers", mock.Anything, mock.Anything).Return(data.Developers, nil)
	stubCollections(f, data)
	return f
}
