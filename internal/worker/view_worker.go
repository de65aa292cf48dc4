package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/vkoval/automarket/internal/pkg/logger"
)

const (
	// Debounce window - collect views for the same product within this
	// duration and flush them as a single increment
	debounceWindow = 1 * time.Second

	// Retry configuration
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
)

// ViewEvent represents a product view event from NATS
type ViewEvent struct {
	EventType string    `json:"event_type"`
	ProductID string    `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ViewWorker consumes view events and batches view-count increments.
// Rapid views of the same product within the debounce window collapse
// into one database write.
type ViewWorker struct {
	counter *Counter
	logger  *logger.Logger

	mu         sync.Mutex
	pending    map[string]*pendingIncrement
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

type pendingIncrement struct {
	productID string
	views     int
	timer     *time.Timer
}

// NewViewWorker creates a new view-count worker
func NewViewWorker(counter *Counter, logger *logger.Logger) *ViewWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &ViewWorker{
		counter:    counter,
		logger:     logger,
		pending:    make(map[string]*pendingIncrement),
		shutdownCh: make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// HandleEvent processes one view event
func (w *ViewWorker) HandleEvent(data []byte) error {
	var event ViewEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.Error("Failed to unmarshal view event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.ProductID == "" {
		return fmt.Errorf("view event missing product id")
	}

	w.logger.WithFields(map[string]interface{}{
		"product_id": event.ProductID,
		"timestamp":  event.Timestamp,
	}).Debug("Received view event")

	w.scheduleIncrement(event.ProductID)
	return nil
}

// scheduleIncrement accumulates views per product behind a debounce timer.
// The first view of a product arms the timer; further views within the
// window only bump the accumulated count.
func (w *ViewWorker) scheduleIncrement(productID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdownCh:
		w.logger.Info("Worker shutting down, ignoring new event")
		return
	default:
	}

	if existing, found := w.pending[productID]; found {
		existing.views++
		return
	}

	w.wg.Add(1)
	w.pending[productID] = &pendingIncrement{
		productID: productID,
		views:     1,
		timer: time.AfterFunc(debounceWindow, func() {
			w.flush(productID)
		}),
	}
}

// flush writes the accumulated increment with retry and backoff
func (w *ViewWorker) flush(productID string) {
	defer w.wg.Done()

	w.mu.Lock()
	pending, found := w.pending[productID]
	delete(w.pending, productID)
	w.mu.Unlock()

	if !found {
		return
	}

	w.logger.WithFields(map[string]interface{}{
		"product_id": productID,
		"views":      pending.views,
	}).Info("Flushing view count increment")

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			w.logger.WithFields(map[string]interface{}{
				"product_id": productID,
				"attempt":    attempt + 1,
				"backoff_ms": backoff.Milliseconds(),
			}).Warn("Retrying view count update")

			select {
			case <-time.After(backoff):
			case <-w.ctx.Done():
				w.logger.Info("Worker context cancelled, aborting retry")
				return
			}

			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(w.ctx, 5*time.Second)
		err := w.counter.Increment(ctx, productID, pending.views)
		cancel()

		if err == nil {
			return
		}

		lastErr = err
		w.logger.WithFields(map[string]interface{}{
			"product_id": productID,
			"attempt":    attempt + 1,
		}).Error("Failed to update view count", err)
	}

	w.logger.WithFields(map[string]interface{}{
		"product_id":  productID,
		"max_retries": maxRetries,
	}).Error("View count update failed after all retries", lastErr)
}

// Shutdown cancels pending timers and waits for in-flight flushes.
func (w *ViewWorker) Shutdown(ctx context.Context) error {
	w.logger.Info("Shutting down view worker...")

	close(w.shutdownCh)
	w.cancel()

	w.mu.Lock()
	pendingCount := len(w.pending)
	for _, inc := range w.pending {
		if inc.timer.Stop() {
			w.wg.Done()
		}
	}
	w.pending = make(map[string]*pendingIncrement)
	w.mu.Unlock()

	w.logger.WithFields(map[string]interface{}{
		"cancelled_increments": pendingCount,
	}).Info("Cancelled pending increments")

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("All in-flight increments completed")
		return nil
	case <-ctx.Done():
		w.logger.Warn("Shutdown timeout reached, forcing exit")
		return ctx.Err()
	}
}

// PendingCount returns the number of products with an unflushed increment.
func (w *ViewWorker) PendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}
