package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vkoval/automarket/internal/domain"
	"github.com/vkoval/automarket/internal/pkg/logger"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// RefreshEvent is published after a successful catalog re-resolution.
type RefreshEvent struct {
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Count     int       `json:"count"`
}

// tierResult is the tagged outcome of one fallback tier: data, empty, or
// failure. The selection function below picks the first acceptable one.
type tierResult struct {
	products []domain.Product
	err      error
}

func (r tierResult) usable() bool {
	return r.err == nil && len(r.products) > 0
}

// Resolver obtains the baseline catalog from an ordered fallback chain:
// the published-products backend, then the embedded seed dataset, then a
// minimal emergency set. It never leaves the caller without data unless
// every tier fails, and writes every successful resolution through the
// snapshot cache.
type Resolver struct {
	cache     *SnapshotCache
	primary   domain.CatalogSource
	secondary domain.CatalogSource
	emergency []domain.Product
	timeout   time.Duration
	publisher EventPublisher
	logger    *logger.Logger
}

// NewResolver creates a resolver over the given tiers. publisher may be
// nil when no event surface is wired.
func NewResolver(
	cache *SnapshotCache,
	primary domain.CatalogSource,
	secondary domain.CatalogSource,
	timeout time.Duration,
	publisher EventPublisher,
	log *logger.Logger,
) *Resolver {
	return &Resolver{
		cache:     cache,
		primary:   primary,
		secondary: secondary,
		emergency: EmergencyProducts(),
		timeout:   timeout,
		publisher: publisher,
		logger:    log,
	}
}

// Resolve returns the current catalog snapshot, serving the cache while it
// is fresh and falling through the tier chain otherwise. A single call
// performs no retries; retry-on-failure belongs to the caller.
func (r *Resolver) Resolve(ctx context.Context) ([]domain.Product, error) {
	if snapshot, ok := r.cache.Get(); ok {
		return snapshot, nil
	}
	return r.refresh(ctx)
}

// ForceRefresh bypasses the cache read but still writes the result
// through, so consumers pick up the new snapshot immediately.
func (r *Resolver) ForceRefresh(ctx context.Context) ([]domain.Product, error) {
	return r.refresh(ctx)
}

// Product looks one listing up in the resolved snapshot.
func (r *Resolver) Product(ctx context.Context, id string) (*domain.Product, error) {
	snapshot, err := r.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snapshot {
		if snapshot[i].ID == id {
			return &snapshot[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *Resolver) refresh(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// Primary and secondary run concurrently; the seed tier resolves
	// near-instantly, so overall latency is bounded by the backend call
	// without the secondary ever being on the critical path.
	primaryCh := make(chan tierResult, 1)
	secondaryCh := make(chan tierResult, 1)

	go r.fetchTier(ctx, r.primary, primaryCh)
	go r.fetchTier(ctx, r.secondary, secondaryCh)

	primary := <-primaryCh
	secondary := <-secondaryCh

	chosen, source := r.selectTier(primary, secondary)
	if len(chosen) == 0 {
		r.logger.Error("all catalog source tiers exhausted", domain.ErrCatalogUnavailable)
		return nil, domain.ErrCatalogUnavailable
	}

	r.cache.Put(chosen)
	r.publishRefresh(source, len(chosen))

	r.logger.WithFields(map[string]interface{}{
		"source": source,
		"count":  len(chosen),
	}).Info("Catalog snapshot refreshed")

	return chosen, nil
}

func (r *Resolver) fetchTier(ctx context.Context, source domain.CatalogSource, out chan<- tierResult) {
	products, err := source.Fetch(ctx)
	if err != nil {
		r.logger.WithFields(map[string]interface{}{
			"tier": source.Name(),
		}).Warnf("catalog tier failed: %v", err)
		out <- tierResult{err: err}
		return
	}
	out <- tierResult{products: products}
}

// selectTier picks the first acceptable result in tier order: primary if
// it yielded data, else secondary, else the emergency dataset.
func (r *Resolver) selectTier(primary, secondary tierResult) ([]domain.Product, string) {
	if primary.usable() {
		return primary.products, r.primary.Name()
	}
	if secondary.usable() {
		return secondary.products, r.secondary.Name()
	}
	return r.emergency, "emergency"
}

// publishRefresh publishes a refresh event (non-blocking)
func (r *Resolver) publishRefresh(source string, count int) {
	if r.publisher == nil {
		return
	}

	event := RefreshEvent{
		EventType: "catalog.refreshed",
		Timestamp: time.Now(),
		Source:    source,
		Count:     count,
	}

	data, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("Failed to marshal refresh event", err)
		return
	}

	go func() {
		if err := r.publisher.Publish(context.Background(), "catalog.events", data); err != nil {
			r.logger.Error("Failed to publish refresh event", err)
		}
	}()
}
