package core

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/shipboard/core/period"
	"github.com/huangsam/shipboard/internal/apiclient"
	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func hydratedState(t *testing.T, filter schema.BoardFilter) *period.FilterState {
	t.Helper()
	state := period.NewFilterState(nil, quietLogger())
	require.NoError(t, state.Set(filter))
	return state
}

func TestBoardRefreshPublishesDashboard(t *testing.T) {
	fetcher := fixtureFetcher()
	board := NewBoard(fetcher, hydratedState(t, schema.BoardFilter{Mode: schema.AllMode}), quietLogger(), DashboardOptions{})

	_, ok := board.Dashboard()
	assert.False(t, ok, "nothing published before the first refresh")

	dashboard, err := board.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, period.AllTimeLabel, dashboard.Period.Label)
	assert.Equal(t, uint64(1), board.Generation())

	published, ok := board.Dashboard()
	require.True(t, ok)
	assert.Equal(t, dashboard, published)

	data, ok := board.Data()
	require.True(t, ok)
	assert.Equal(t, fixtureSprints(), data.Sprints)
	assert.Len(t, data.Releases, 5)

	fetcher.AssertCalled(t, "FetchReleases", mock.Anything, schema.ReleaseScope{}, "")
}

func TestBoardRefreshUsesSprintQuery(t *testing.T) {
	sprintID := int64(3)
	fetcher := fixtureFetcher()
	board := NewBoard(fetcher, hydratedState(t, schema.BoardFilter{Mode: schema.SprintMode, SprintID: &sprintID}), quietLogger(), DashboardOptions{})

	dashboard, err := board.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sprint 7 (2024-02-01 → 2024-02-14)", dashboard.Period.Label)
	fetcher.AssertCalled(t, "FetchDevelopers", mock.Anything, "?sprint_id=3")

	// Only release 2 is dated inside the sprint.
	require.Len(t, dashboard.Releases, 1)
	assert.Equal(t, int64(2), dashboard.Releases[0].ID)
}

func TestBoardRefreshNotHydrated(t *testing.T) {
	fetcher := &apiclient.MockFetcher{}
	board := NewBoard(fetcher, period.NewFilterState(nil, quietLogger()), quietLogger(), DashboardOptions{})

	_, err := board.Refresh(context.Background())
	assert.ErrorIs(t, err, period.ErrNotHydrated)
	fetcher.AssertNotCalled(t, "FetchSprints", mock.Anything)
	assert.Equal(t, uint64(1), board.Generation(), "the generation is taken before the filter is read")
}

func TestBoardFilterChangeDuringSprintFetchIsStale(t *testing.T) {
	data := fixtureData()
	fetcher := &apiclient.MockFetcher{}
	board := NewBoard(fetcher, hydratedState(t, schema.BoardFilter{Mode: schema.AllMode}), quietLogger(), DashboardOptions{})

	fetcher.On("FetchSprints", mock.Anything).
		Run(func(mock.Arguments) {
			require.NoError(t, board.SetFilter(schema.BoardFilter{Mode: schema.RangeMode, From: "2024-02-01", To: "2024-02-29"}))
		}).
		Return(fixtureSprints(), nil).Once()
	fetcher.On("FetchSprints", mock.Anything).Return(fixtureSprints(), nil)
	fetcher.On("FetchDevelopers", mock.Anything, mock.Anything).Return(data.Developers, nil)
	stubCollections(fetcher, data)

	_, err := board.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrStaleResponse)
	_, ok := board.Dashboard()
	assert.False(t, ok)

	dashboard, err := board.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01 → 2024-02-29", dashboard.Period.Label)
}

func TestBoardRefreshErrors(t *testing.T) {
	t.Run("sprints", func(t *testing.T) {
		fetcher := &apiclient.MockFetcher{}
		fetcher.On("FetchSprints", mock.Anything).Return(nil, errors.New("offline"))
		board := NewBoard(fetcher, hydratedState(t, schema.BoardFilter{Mode: schema.AllMode}), quietLogger(), DashboardOptions{})

		_, err := board.Refresh(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch sprints")
	})

	t.Run("collection", func(t *testing.T) {
		boom := errors.New("502 bad gateway")
		fetcher := &apiclient.MockFetcher{}
		fetcher.On("FetchSprints", mock.Anything).Return(fixtureSprints(), nil)
		fetcher.On("FetchDevelopers", mock.Anything, mock.Anything).Return(nil, boom)
		stubCollections(fetcher, fixtureData())
		board := NewBoard(fetcher, hydratedState(t, schema.BoardFilter{Mode: schema.AllMode}), quietLogger(), DashboardOptions{})

		_, err := board.Refresh(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "fetch developers")

		_, ok := board.Dashboard()
		assert.False(t, ok)
	})
}

func TestBoardDiscardsStaleResponse(t *testing.T) {
	data := fixtureData()
	started := make(chan struct{})
	release := make(chan struct{})

	fetcher := &apiclient.MockFetcher{}
	fetcher.On("FetchSprints", mock.Anything).Return(fixtureSprints(), nil)
	fetcher.On("FetchDevelopers", mock.Anything, "").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(data.Developers, nil).Once()
	fetcher.On("FetchDevelopers", mock.Anything, mock.Anything).Return(data.Developers, nil)
	stubCollections(fetcher, data)

	board := NewBoard(fetcher, hydratedState(t, schema.BoardFilter{Mode: schema.AllMode}), quietLogger(), DashboardOptions{})

	errCh := make(chan error, 1)
	go func() {
		_, err := board.Refresh(context.Background())
		errCh <- err
	}()

	<-started
	require.NoError(t, board.SetFilter(schema.BoardFilter{Mode: schema.RangeMode, From: "2024-02-01", To: "2024-02-29"}))
	close(release)

	assert.ErrorIs(t, <-errCh, ErrStaleResponse)
	_, ok := board.Dashboard()
	assert.False(t, ok, "a stale response must not be published")

	dashboard, err := board.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01 → 2024-02-29", dashboard.Period.Label)
	assert.Equal(t, uint64(3), board.Generation())
}

func TestBoardSetFilterRejectsInvalid(t *testing.T) {
	board := NewBoard(&apiclient.MockFetcher{}, hydratedState(t, schema.BoardFilter{Mode: schema.AllMode}), quietLogger(), DashboardOptions{})

	err := board.SetFilter(schema.BoardFilter{Mode: schema.SprintMode})
	assert.ErrorIs(t, err, period.ErrInvalidFilter)
	assert.Equal(t, uint64(0), board.Generation(), "rejected filters do not invalidate refreshes")
}
