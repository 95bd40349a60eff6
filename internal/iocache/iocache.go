package iocache

import (
	"sync"

	"github.com/huangsam/codequal/internal/contract"
)

// CacheStoreManager holds the score cache and the run history store.
// Either may be nil when its backend is disabled.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	score        contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetScoreStore returns the score CacheStore.
func (mgr *CacheStoreManager) GetScoreStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.score
}

// GetHistoryStore returns the HistoryStore, or nil when tracking is off.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.history == nil {
		return nil
	}
	return mgr.history
}
