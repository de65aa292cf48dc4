package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/vkoval/automarket/internal/domain"
)

// Debouncer gates a computation behind a quiet window per input stream.
// Each Wait schedules a timer for its stream and supersedes any pending
// wait on the same stream, so exactly one caller per quiet period gets a
// nil return: the one holding the most recent input.
type Debouncer struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*pendingWait
}

type pendingWait struct {
	superseded chan struct{}
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window:  window,
		pending: make(map[string]*pendingWait),
	}
}

// Wait blocks until the quiet window elapses without a newer Wait on the
// same stream. It returns domain.ErrSuperseded when a newer call arrives
// first, or the context error when ctx is cancelled.
func (d *Debouncer) Wait(ctx context.Context, stream string) error {
	d.mu.Lock()
	if prev, ok := d.pending[stream]; ok {
		close(prev.superseded)
	}
	w := &pendingWait{superseded: make(chan struct{})}
	d.pending[stream] = w
	d.mu.Unlock()

	timer := time.NewTimer(d.window)
	defer timer.Stop()

	select {
	case <-timer.C:
		d.clear(stream, w)
		return nil
	case <-w.superseded:
		return domain.ErrSuperseded
	case <-ctx.Done():
		d.clear(stream, w)
		return ctx.Err()
	}
}

// PendingCount returns the number of streams with an unresolved wait.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *Debouncer) clear(stream string, w *pendingWait) {
	d.mu.Lock()
	if d.pending[stream] == w {
		delete(d.pending, stream)
	}
	d.mu.Unlock()
}
