package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vkoval/automarket/internal/domain"
)

func TestSnapshotCache_GetAfterPut(t *testing.T) {
	cache := NewSnapshotCache(5 * time.Minute)

	products := []domain.Product{{ID: "a", Title: "Brake Pads"}}
	cache.Put(products)

	got, ok := cache.Get()

	assert.True(t, ok)
	assert.Equal(t, products, got)
}

func TestSnapshotCache_EmptyCacheMisses(t *testing.T) {
	cache := NewSnapshotCache(5 * time.Minute)

	got, ok := cache.Get()

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSnapshotCache_ExpiresAfterTTL(t *testing.T) {
	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := newSnapshotCache(5*time.Minute, func() time.Time { return current })

	cache.Put([]domain.Product{{ID: "a"}})

	// Still fresh just inside the TTL
	current = current.Add(5*time.Minute - time.Second)
	_, ok := cache.Get()
	assert.True(t, ok)

	// Stale at exactly the TTL boundary
	current = current.Add(time.Second)
	got, ok := cache.Get()
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSnapshotCache_PutRefreshesStaleEntry(t *testing.T) {
	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := newSnapshotCache(5*time.Minute, func() time.Time { return current })

	cache.Put([]domain.Product{{ID: "a"}})
	current = current.Add(10 * time.Minute)

	_, ok := cache.Get()
	assert.False(t, ok)

	replacement := []domain.Product{{ID: "b"}}
	cache.Put(replacement)

	got, ok := cache.Get()
	assert.True(t, ok)
	assert.Equal(t, replacement, got)
}

func TestSnapshotCache_LastWriteWins(t *testing.T) {
	cache := NewSnapshotCache(5 * time.Minute)

	cache.Put([]domain.Product{{ID: "slow-tier"}})
	cache.Put([]domain.Product{{ID: "late-arrival"}})

	got, ok := cache.Get()

	assert.True(t, ok)
	assert.Equal(t, "late-arrival", got[0].ID)
}
