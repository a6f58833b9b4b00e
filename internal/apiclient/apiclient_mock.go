package apiclient

import (
	"context"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of Fetcher for testing.
type MockFetcher struct {
	mock.Mock
}

var _ contract.Fetcher = &MockFetcher{} // Compile-time check

// FetchDevelopers implements the Fetcher interface.
func (m *MockFetcher) FetchDevelopers(ctx context.Context, query string) ([]schema.DeveloperProfile, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]schema.DeveloperProfile)
	return items, args.Error(1)
}

// FetchTeamMonthly implements the Fetcher interface.
func (m *MockFetcher) FetchTeamMonthly(ctx context.Context, query string) ([]schema.TeamMonthlyRow, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]schema.TeamMonthlyRow)
	return items, args.Error(1)
}

// FetchTeamSprint implements the Fetcher interface.
func (m *MockFetcher) FetchTeamSprint(ctx context.Context, query string) ([]schema.TeamSprintRow, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]schema.TeamSprintRow)
	return items, args.Error(1)
}

// FetchBugFixes implements the Fetcher interface.
func (m *MockFetcher) FetchBugFixes(ctx context.Context, query string) ([]schema.BugFixDetail, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]schema.BugFixDetail)
	return items, args.Error(1)
}

// FetchIncidents implements the Fetcher interface.
func (m *MockFetcher) FetchIncidents(ctx context.Context, query string) ([]schema.Incident, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]schema.Incident)
	return items, args.Error(1)
}

// FetchProjects implements the Fetcher interface.
func (m *MockFetcher) FetchProjects(ctx context.Context, query string) ([]schema.Project, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]schema.Project)
	return items, args.Error(1)
}

// FetchProjectQuality implements the Fetcher interface.
func (m *MockFetcher) FetchProjectQuality(ctx context.Context, query string) ([]schema.ProjectQuality, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]schema.ProjectQuality)
	return items, args.Error(1)
}

// FetchBaseBranches implements the Fetcher interface.
func (m *MockFetcher) FetchBaseBranches(ctx context.Context, query string) ([]schema.BaseBranch, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]schema.BaseBranch)
	return items, args.Error(1)
}

// FetchRepoMatrix implements the Fetcher interface.
func (m *MockFetcher) FetchRepoMatrix(ctx context.Context, query string) ([]schema.RepoMatrixEntry, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]schema.RepoMatrixEntry)
	return items, args.Error(1)
}

// FetchReleases implements the Fetcher interface.
func (m *MockFetcher) FetchReleases(ctx context.Context, scope schema.ReleaseScope, query string) ([]schema.Release, error) {
	args := m.Called(ctx, scope, query)
	items, _ := args.Get(0).([]schema.Release)
	return items, args.Error(1)
}

// FetchSprints implements the Fetcher interface.
func (m *MockFetcher) FetchSprints(ctx context.Context) ([]schema.Sprint, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]schema.Sprint)
	return items, args.Error(1)
}

// GenerateSummary implements the Fetcher interface.
func (m *MockFetcher) GenerateSummary(ctx context.Context, projectID int64) (string, error) {
	args := m.Called(ctx, projectID)
	return args.String(0), args.Error(1)
}

// MockAdminClient is a mock implementation of AdminClient for testing.
type MockAdminClient struct {
	mock.Mock
}

var _ contract.AdminClient = &MockAdminClient{} // Compile-time check

// List implements the AdminClient interface.
func (m *MockAdminClient) List(ctx context.Context, table string) ([]schema.Row, error) {
	args := m.Called(ctx, table)
	rows, _ := args.Get(0).([]schema.Row)
	return rows, args.Error(1)
}

// Create implements the AdminClient interface.
func (m *MockAdminClient) Create(ctx context.Context, table string, row schema.Row) (schema.Row, error) {
	args := m.Called(ctx, table, row)
	saved, _ := args.Get(0).(schema.Row)
	return saved, args.Error(1)
}

// Update implements the AdminClient interface.
func (m *MockAdminClient) Update(ctx context.Context, table string, id string, row schema.Row) (schema.Row, error) {
	args := m.Called(ctx, table, id, row)
	saved, _ := args.Get(0).(schema.Row)
	return saved, args.Error(1)
}

// Remove implements the AdminClient interface.
func (m *MockAdminClient) Remove(ctx context.Context, table string, id string) error {
	args := m.Called(ctx, table, id)
	return args.Error(0)
}
