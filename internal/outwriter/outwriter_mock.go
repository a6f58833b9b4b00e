package outwriter

import (
	"time"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockOutputWriter is a mock implementation of OutputWriter for testing.
type MockOutputWriter struct {
	mock.Mock
}

var _ contract.OutputWriter = &MockOutputWriter{} // Compile-time check

// LogHeader implements the OutputWriter interface.
func (m *MockOutputWriter) LogHeader(res schema.PeriodResolution, cfg *contract.Config) {
	m.Called(res, cfg)
}

// WriteBreakdowns implements the OutputWriter interface.
func (m *MockOutputWriter) WriteBreakdowns(breakdowns []schema.DeveloperBreakdown, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(breakdowns, cfg, duration)
	return args.Error(0)
}

// WriteTimeline implements the OutputWriter interface.
func (m *MockOutputWriter) WriteTimeline(result schema.TimelineResult, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteBugFixMatrix implements the OutputWriter interface.
func (m *MockOutputWriter) WriteBugFixMatrix(matrix schema.BugFixMatrix, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(matrix, cfg, duration)
	return args.Error(0)
}

// WriteOwnership implements the OutputWriter interface.
func (m *MockOutputWriter) WriteOwnership(results []schema.OwnershipResult, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(results, cfg, duration)
	return args.Error(0)
}

// WriteCoverage implements the OutputWriter interface.
func (m *MockOutputWriter) WriteCoverage(report schema.CoverageReport, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteQuarters implements the OutputWriter interface.
func (m *MockOutputWriter) WriteQuarters(quarters []schema.QuarterDelta, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(quarters, cfg, duration)
	return args.Error(0)
}

// WriteIncidents implements the OutputWriter interface.
func (m *MockOutputWriter) WriteIncidents(incidents []schema.Incident, summary []schema.IncidentSummary, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(incidents, summary, cfg, duration)
	return args.Error(0)
}

// WriteDashboard implements the OutputWriter interface.
func (m *MockOutputWriter) WriteDashboard(dashboard schema.Dashboard, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(dashboard, cfg, duration)
	return args.Error(0)
}

// WriteComparison implements the OutputWriter interface.
func (m *MockOutputWriter) WriteComparison(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteProjectSummary implements the OutputWriter interface.
func (m *MockOutputWriter) WriteProjectSummary(project schema.Project, cfg *contract.Config) error {
	args := m.Called(project, cfg)
	return args.Error(0)
}

// WriteFilter implements the OutputWriter interface.
func (m *MockOutputWriter) WriteFilter(filter schema.BoardFilter, res schema.PeriodResolution, cfg *contract.Config) error {
	args := m.Called(filter, res, cfg)
	return args.Error(0)
}

// WriteAdminRows implements the OutputWriter interface.
func (m *MockOutputWriter) WriteAdminRows(table string, rows []schema.Row, cfg *contract.Config) error {
	args := m.Called(table, rows, cfg)
	return args.Error(0)
}
