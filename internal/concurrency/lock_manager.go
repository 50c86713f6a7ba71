package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. Services lock the ledger key for
// publish and merge, and per-item keys for allocation mutations, so two
// in-process writers cannot both observe the same remaining quantity.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// ItemKey names the lock covering one item's allocations.
func ItemKey(itemID string) string {
	return "item:" + itemID
}

// LedgerKey names the lock covering publish and merge, which touch many
// items at once.
const LedgerKey = "ledger"
