package period

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"github.com/sirupsen/logrus"
)

// FilterKey is the preferences key the board filter is stored under.
const FilterKey = "board.filter"

// ErrNotHydrated is returned when the filter is read before the saved value was loaded.
var ErrNotHydrated = errors.New("board filter not hydrated yet")

// FilterState holds the current board filter and persists it through a preferences store.
// Persistence is best-effort: storage failures are logged and never block the board.
type FilterState struct {
	store    contract.PreferencesStore
	logger   logrus.FieldLogger
	mu       sync.RWMutex
	filter   schema.BoardFilter
	hydrated atomic.Bool
}

// NewFilterState creates a filter state backed by store. A nil store disables persistence.
func NewFilterState(store contract.PreferencesStore, logger logrus.FieldLogger) *FilterState {
	if logger == nil {
		logger = contract.Logger
	}
	return &FilterState{
		store:  store,
		logger: logger.WithField("component", "filter_state"),
		filter: schema.BoardFilter{Mode: schema.AllMode},
	}
}

// Hydrate loads the saved filter and marks the state as hydrated.
// Missing, unreadable or invalid values fall back to the all-time filter.
func (s *FilterState) Hydrate() schema.BoardFilter {
	filter := schema.BoardFilter{Mode: schema.AllMode}
	if saved, ok := s.load(); ok {
		filter = saved
	}

	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	s.hydrated.Store(true)
	return filter
}

func (s *FilterState) load() (schema.BoardFilter, bool) {
	var filter schema.BoardFilter
	if s.store == nil {
		return filter, false
	}
	raw, found, err := s.store.Load(FilterKey)
	if err != nil {
		s.logger.WithError(err).Debug("Could not read saved filter")
		return filter, false
	}
	if !found {
		return filter, false
	}
	if err := json.Unmarshal(raw, &filter); err != nil {
		s.logger.WithError(err).Debug("Discarding unreadable saved filter")
		return filter, false
	}
	if err := Validate(filter); err != nil {
		s.logger.WithError(err).Debug("Discarding invalid saved filter")
		return filter, false
	}
	return filter, true
}

// Hydrated reports whether Hydrate has completed.
func (s *FilterState) Hydrated() bool {
	return s.hydrated.Load()
}

// Current returns the active filter, or ErrNotHydrated before Hydrate completes.
func (s *FilterState) Current() (schema.BoardFilter, error) {
	if !s.Hydrated() {
		return schema.BoardFilter{}, ErrNotHydrated
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneFilter(s.filter), nil
}

// Set validates and applies a new filter, then saves it best-effort.
// Setting a filter also counts as hydration since it supersedes any saved value.
func (s *FilterState) Set(filter schema.BoardFilter) error {
	if err := Validate(filter); err != nil {
		return err
	}
	filter = cloneFilter(filter)

	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	s.hydrated.Store(true)

	s.save(filter)
	return nil
}

// Clear resets the filter to all-time and saves that choice.
func (s *FilterState) Clear() {
	_ = s.Set(schema.BoardFilter{Mode: schema.AllMode})
}

func (s *FilterState) save(filter schema.BoardFilter) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(filter)
	if err != nil {
		s.logger.WithError(err).Debug("Could not encode filter")
		return
	}
	if err := s.store.Save(FilterKey, raw); err != nil {
		s.logger.WithError(fmt.Errorf("save %s: %w", FilterKey, err)).Debug("Could not save filter")
	}
}

func cloneFilter(f schema.BoardFilter) schema.BoardFilter {
	if f.SprintID != nil {
		id := *f.SprintID
		f.SprintID = &id
	}
	return f
}
