package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/huangsam/shipboard/core/period"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"github.com/sirupsen/logrus"
)

// ErrStaleResponse is returned by Refresh when a newer refresh or filter change superseded it.
var ErrStaleResponse = errors.New("stale response discarded")

// Board fetches the period-scoped collections for the current filter and derives the dashboard.
//
// Every refresh and every filter change takes a new generation. A refresh only publishes its
// result when its generation is still the latest once the fetch completes, so a slow earlier
// response can never overwrite a faster later one.
type Board struct {
	fetcher contract.Fetcher
	state   *period.FilterState
	logger  logrus.FieldLogger
	opts    DashboardOptions

	gen atomic.Uint64

	mu        sync.RWMutex
	data      *schema.DashboardData
	dashboard *schema.Dashboard
}

// NewBoard creates a board reading its filter from state.
func NewBoard(fetcher contract.Fetcher, state *period.FilterState, logger logrus.FieldLogger, opts DashboardOptions) *Board {
	if logger == nil {
		logger = contract.Logger
	}
	return &Board{
		fetcher: fetcher,
		state:   state,
		logger:  logger.WithField("component", "board"),
		opts:    opts,
	}
}

// Generation returns the latest generation handed out.
func (b *Board) Generation() uint64 {
	return b.gen.Load()
}

// SetFilter applies a new filter and invalidates any refresh still in flight.
func (b *Board) SetFilter(filter schema.BoardFilter) error {
	if err := b.state.Set(filter); err != nil {
		return err
	}
	gen := b.gen.Add(1)
	b.logger.WithField("generation", gen).Debug("Filter changed")
	return nil
}

// Refresh fetches and derives the dashboard for the current filter.
// It returns period.ErrNotHydrated before the saved filter was loaded, and ErrStaleResponse
// when the result was superseded while fetching.
func (b *Board) Refresh(ctx context.Context) (schema.Dashboard, error) {
	// The generation is taken before the filter is read, so a filter change that lands in
	// between always supersedes this refresh.
	gen := b.gen.Add(1)
	ctx = withGeneration(ctx, gen)
	log := b.logger.WithField("generation", gen)

	filter, err := b.state.Current()
	if err != nil {
		return schema.Dashboard{}, err
	}

	sprints, err := b.fetcher.FetchSprints(ctx)
	if err != nil {
		return schema.Dashboard{}, fmt.Errorf("fetch sprints: %w", err)
	}
	res := period.Resolve(filter, sprints)
	log = log.WithField("period", res.Label)
	log.Debug("Refreshing board")

	data, err := FetchDashboardData(ctx, b.fetcher, res.QueryParams)
	if err != nil {
		if b.isStale(ctx) {
			return schema.Dashboard{}, ErrStaleResponse
		}
		return schema.Dashboard{}, err
	}
	data.Sprints = sprints

	if b.isStale(ctx) {
		log.Debug("Discarding stale board data")
		return schema.Dashboard{}, ErrStaleResponse
	}

	dashboard := BuildDashboard(*data, res, b.opts)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.isStale(ctx) {
		log.Debug("Discarding stale dashboard")
		return schema.Dashboard{}, ErrStaleResponse
	}
	b.data = data
	b.dashboard = &dashboard
	return dashboard, nil
}

// isStale reports whether the generation captured in ctx is no longer the latest.
func (b *Board) isStale(ctx context.Context) bool {
	gen, ok := generationOf(ctx)
	return ok && gen != b.gen.Load()
}

// Dashboard returns the last published dashboard.
func (b *Board) Dashboard() (schema.Dashboard, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.dashboard == nil {
		return schema.Dashboard{}, false
	}
	return *b.dashboard, true
}

// Data returns the raw collections behind the last published dashboard.
func (b *Board) Data() (schema.DashboardData, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.data == nil {
		return schema.DashboardData{}, false
	}
	return *b.data, true
}
