package geocode

import (
	"context"
	"errors"
	"sync"
	"time"
)

const lookupTimeout = 15 * time.Second

// Watcher coalesces address edits into debounced geocoding lookups. Each edit
// bumps a generation counter that travels across the async boundary, so a
// stale response can never overwrite the result of a later edit.
type Watcher struct {
	geocoder Geocoder
	debounce time.Duration
	apply    func(Result)
	fail     func(error)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	address string
	closed  bool
}

// NewWatcher creates a watcher that calls apply with the latest lookup's
// result. fail may be nil; it receives failures for the latest lookup only.
func NewWatcher(g Geocoder, debounce time.Duration, apply func(Result), fail func(error)) (*Watcher, error) {
	if g == nil {
		return nil, errors.New("geocoder is required")
	}
	if apply == nil {
		return nil, errors.New("apply callback is required")
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		geocoder: g,
		debounce: debounce,
		apply:    apply,
		fail:     fail,
	}, nil
}

// Lookup notes an address edit and (re)arms the debounce timer.
func (w *Watcher) Lookup(address string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	w.gen++
	w.address = address
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.onTimer)
		return
	}
	w.timer.Reset(w.debounce)
}

func (w *Watcher) onTimer() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	gen := w.gen
	address := w.address
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	result, err := w.geocoder.Resolve(ctx, address)

	w.mu.Lock()
	stale := gen != w.gen || w.closed
	w.mu.Unlock()
	if stale {
		// A later edit superseded this lookup while it was in flight.
		return
	}

	if err != nil {
		if w.fail != nil {
			w.fail(err)
		}
		return
	}
	w.apply(*result)
}

// Close stops the timer; in-flight lookups are dropped on return.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
}
