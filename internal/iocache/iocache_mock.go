package iocache

import (
	"time"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetPreferenceStore implements the StoreManager interface.
func (m *MockStoreManager) GetPreferenceStore() contract.PreferencesStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.PreferencesStore)
	return store
}

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockPreferenceStore is a mock implementation of PreferencesStore for testing.
type MockPreferenceStore struct {
	mock.Mock
}

var _ contract.PreferencesStore = &MockPreferenceStore{} // Compile-time check

// Load implements the PreferencesStore interface.
func (m *MockPreferenceStore) Load(key string) ([]byte, bool, error) {
	args := m.Called(key)
	value, _ := args.Get(0).([]byte)
	return value, args.Bool(1), args.Error(2)
}

// Save implements the PreferencesStore interface.
func (m *MockPreferenceStore) Save(key string, value []byte) error {
	args := m.Called(key, value)
	return args.Error(0)
}

// GetStatus implements the PreferencesStore interface.
func (m *MockPreferenceStore) GetStatus() (schema.PreferenceStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.PreferenceStatus)
	return status, args.Error(1)
}

// Close implements the PreferencesStore interface.
func (m *MockPreferenceStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginSnapshot implements the HistoryStore interface.
func (m *MockHistoryStore) BeginSnapshot(startTime time.Time, periodLabel string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, periodLabel, configParams)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

// EndSnapshot implements the HistoryStore interface.
func (m *MockHistoryStore) EndSnapshot(snapshotID int64, endTime time.Time, totalDevelopers int) error {
	args := m.Called(snapshotID, endTime, totalDevelopers)
	return args.Error(0)
}

// RecordDeveloperSnapshot implements the HistoryStore interface.
func (m *MockHistoryStore) RecordDeveloperSnapshot(snapshotID int64, snapshot schema.DeveloperSnapshot) error {
	args := m.Called(snapshotID, snapshot)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.HistoryStatus)
	return status, args.Error(1)
}

// GetAllSnapshotRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllSnapshotRuns() ([]schema.SnapshotRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.SnapshotRunRecord)
	return runs, args.Error(1)
}

// GetAllDeveloperSnapshots implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllDeveloperSnapshots() ([]schema.DeveloperSnapshotRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.DeveloperSnapshotRecord)
	return records, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
