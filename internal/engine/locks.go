package engine

import "sync"

// lockTable is an explicit ownership table keyed by product ID. A product's
// slot is held for the duration of its pipeline so two overlapping runs can
// never race on the same sync state. Slots are released on every exit path,
// including failures.
type lockTable struct {
	mu    sync.Mutex
	owned map[uint]struct{}
}

func newLockTable() *lockTable {
	return &lockTable{owned: make(map[uint]struct{})}
}

// acquire claims the slot for a product ID. Returns false when another
// pipeline already owns it; callers must not block waiting for it.
func (t *lockTable) acquire(id uint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, held := t.owned[id]; held {
		return false
	}
	t.owned[id] = struct{}{}
	return true
}

func (t *lockTable) release(id uint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.owned, id)
}
