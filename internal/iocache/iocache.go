// Package iocache is for durable local storage: UI preferences and snapshot history.
package iocache

import (
	"sync"

	"github.com/huangsam/shipboard/internal/contract"
)

// StoreManagerImpl manages the preferences and history store instances.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	prefs        contract.PreferencesStore
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetPreferenceStore returns the preferences store, or nil when none was initialized.
func (mgr *StoreManagerImpl) GetPreferenceStore() contract.PreferencesStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.prefs
}

// GetHistoryStore returns the history store, or nil when history tracking is disabled.
func (mgr *StoreManagerImpl) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
