package catalog

import (
	"sync"
	"time"

	"github.com/vkoval/automarket/internal/domain"
)

// SnapshotCache holds the last successfully resolved catalog with a fixed
// TTL. Expiry is lazy: a stale snapshot is simply not returned from Get,
// which forces the caller back through the resolver. Concurrent puts are
// last-write-wins; the mutex exists for memory safety, not coordination,
// since catalog data is read-mostly and duplicated resolution work is
// cheaper than serializing resolvers.
type SnapshotCache struct {
	mu       sync.RWMutex
	products []domain.Product
	storedAt time.Time
	ttl      time.Duration
	now      func() time.Time
}

// NewSnapshotCache creates a cache with the given TTL. The TTL is fixed at
// construction and not adjustable per call.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return newSnapshotCache(ttl, time.Now)
}

func newSnapshotCache(ttl time.Duration, now func() time.Time) *SnapshotCache {
	return &SnapshotCache{ttl: ttl, now: now}
}

// Get returns the cached snapshot and true while the entry is within its
// TTL; otherwise nil and false.
func (c *SnapshotCache) Get() ([]domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.products == nil {
		return nil, false
	}
	if c.now().Sub(c.storedAt) >= c.ttl {
		return nil, false
	}
	return c.products, true
}

// Put stores a snapshot with a fresh timestamp, superseding any previous
// entry regardless of its age.
func (c *SnapshotCache) Put(products []domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = products
	c.storedAt = c.now()
}
