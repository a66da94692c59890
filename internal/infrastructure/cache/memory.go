package cache

import (
	"sync"
	"time"

	"github.com/noodlewise/backend/internal/domain"
)

// SnapshotCache is a thread-safe in-memory cache holding the last warehouse
// read. Recommendation requests are read-only and stateless, so a single
// TTL-bounded snapshot keeps repeated requests from re-querying the
// warehouse. A request racing a pipeline refresh may still observe a stale
// or partially replaced catalog; that risk is accepted, not masked.
type SnapshotCache struct {
	mu   sync.RWMutex
	snap *domain.CatalogSnapshot
	ttl  time.Duration
}

// NewSnapshotCache creates a cache whose entries expire after ttl.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SnapshotCache{ttl: ttl}
}

// Snapshot returns the cached snapshot and whether it is still fresh.
func (c *SnapshotCache) Snapshot() (*domain.CatalogSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snap == nil {
		return nil, false
	}
	if time.Since(c.snap.LoadedAt) > c.ttl {
		return nil, false
	}
	return c.snap, true
}

// Store replaces the cached snapshot.
func (c *SnapshotCache) Store(snap *domain.CatalogSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
}

// Invalidate drops the cached snapshot so the next read hits the warehouse.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
}
