package guard

import "sync"

// SlotGuard is a keyed single-slot latch. TryAcquire succeeds only when no
// holder exists for the key; a second caller is rejected instead of blocked,
// so rapid repeated triggers of the same mutation collapse into one in-flight
// operation. Release must run in a deferred final step regardless of outcome.
type SlotGuard struct {
	mu    sync.Mutex
	inUse map[string]bool
}

func New() *SlotGuard {
	return &SlotGuard{
		inUse: make(map[string]bool),
	}
}

func (g *SlotGuard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inUse[key] {
		return false
	}
	g.inUse[key] = true
	return true
}

func (g *SlotGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inUse, key)
}
