// Package registry owns the two keyed collections an interpreter is
// exclusively responsible for: the Delayed-Send Registry and the child
// actor registry, each a mutex-guarded map keyed by id.
package registry

import (
	"sync"

	"github.com/comalice/scxrt/internal/clock"
)

// DelayedSendRegistry maps a send id to the Clock handle scheduled for it.
// A second Register call for an id already in use does NOT cancel the
// prior timer — it only overwrites which handle a later Cancel(id) will
// reach, so the earlier registration still fires unless the caller
// cancels it first. Both fire in that case; this is a deliberate choice
// over silently dropping the earlier timer.
type DelayedSendRegistry struct {
	mu  sync.Mutex
	byID map[string]clock.Handle
	clk clock.Clock
}

// New constructs an empty DelayedSendRegistry bound to clk for cancellation.
func New(clk clock.Clock) *DelayedSendRegistry {
	return &DelayedSendRegistry{byID: make(map[string]clock.Handle), clk: clk}
}

// Register records handle under id, overwriting (not cancelling) any prior
// registration for the same id.
func (r *DelayedSendRegistry) Register(id string, h clock.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id] = h
}

// Cancel clears the clock handle registered for id and removes the entry.
// Silent if id is not found.
func (r *DelayedSendRegistry) Cancel(id string) {
	r.mu.Lock()
	h, ok := r.byID[id]
	if ok {
		delete(r.byID, id)
	}
	r.mu.Unlock()
	if ok {
		r.clk.ClearTimeout(h)
	}
}

// Forget removes id's bookkeeping entry without touching the clock, used
// once a delayed event has already fired and its handle is now stale.
func (r *DelayedSendRegistry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

// CancelAll cancels every outstanding delayed send, called on interpreter
// stop.
func (r *DelayedSendRegistry) CancelAll() {
	r.mu.Lock()
	handles := make([]clock.Handle, 0, len(r.byID))
	for id, h := range r.byID {
		handles = append(handles, h)
		delete(r.byID, id)
	}
	r.mu.Unlock()
	for _, h := range handles {
		r.clk.ClearTimeout(h)
	}
}

// Outstanding reports the number of currently registered delayed sends, for
// metrics (internal/metrics).
func (r *DelayedSendRegistry) Outstanding() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
