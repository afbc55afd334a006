package webui

import (
	"sync"

	"github.com/16SULPHUR/courseify/internal/shared/staleness"
)

// CatalogSnapshot is the last catalog result rendered for one browser
// session. Listing pages serve it while a refresh is in flight.
type CatalogSnapshot struct {
	Location string
	Courses  []CourseCard
	Packages []PackageCard
}

// ViewCache keeps one CatalogSnapshot per session, guarded by fetch
// generations. A snapshot fetched for a superseded location selection is
// discarded instead of overwriting the newer one, whatever order the
// responses land in.
type ViewCache struct {
	mu    sync.RWMutex
	guard *staleness.Guard
	byKey map[string]CatalogSnapshot
}

func NewViewCache() *ViewCache {
	return &ViewCache{
		guard: staleness.NewGuard(),
		byKey: make(map[string]CatalogSnapshot),
	}
}

// Begin stamps the start of a fetch for the session and returns the
// generation to present to Commit.
func (c *ViewCache) Begin(sessionID string) uint64 {
	return c.guard.Invalidate(sessionID)
}

// Commit installs the snapshot if the generation is still current. It reports
// whether the snapshot was accepted.
func (c *ViewCache) Commit(sessionID string, generation uint64, snapshot CatalogSnapshot) bool {
	return c.guard.Commit(sessionID, generation, func() {
		c.mu.Lock()
		c.byKey[sessionID] = snapshot
		c.mu.Unlock()
	})
}

func (c *ViewCache) Get(sessionID string) (CatalogSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot, ok := c.byKey[sessionID]
	return snapshot, ok
}

func (c *ViewCache) Drop(sessionID string) {
	c.guard.Invalidate(sessionID)
	c.mu.Lock()
	delete(c.byKey, sessionID)
	c.mu.Unlock()
}
