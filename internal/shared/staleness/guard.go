package staleness

import "sync"

// Guard serializes the EFFECTS of asynchronous fetches without serializing
// the fetches themselves. Every fetch is stamped with the generation of the
// state snapshot that triggered it; state mutations (login, logout, location
// change) invalidate the key, and a completion stamped with an older
// generation is discarded instead of overwriting newer results.
type Guard struct {
	mu          sync.Mutex
	generations map[string]uint64
}

func NewGuard() *Guard {
	return &Guard{generations: make(map[string]uint64)}
}

// Generation returns the current generation for key. Stamp fetches with this
// before starting them.
func (g *Guard) Generation(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generations[key]
}

// Invalidate bumps the generation, retiring every fetch stamped before the
// call.
func (g *Guard) Invalidate(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generations[key]++
	return g.generations[key]
}

// Commit runs apply only if generation is still current for key, holding the
// guard so a concurrent Invalidate cannot interleave. Reports whether apply
// ran.
func (g *Guard) Commit(key string, generation uint64, apply func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.generations[key] != generation {
		return false
	}
	if apply != nil {
		apply()
	}
	return true
}
