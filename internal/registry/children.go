package registry

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/comalice/scxrt/internal/primitives"
)

// ChildRegistry owns the live ActorRefs a single interpreter has spawned or
// invoked. Every entry here must have a matching entry in the interpreter's
// last-observed State.Children, and vice versa.
type ChildRegistry struct {
	mu  sync.RWMutex
	byID map[primitives.ActorID]primitives.ActorRef
}

// NewChildren constructs an empty ChildRegistry.
func NewChildren() *ChildRegistry {
	return &ChildRegistry{byID: make(map[primitives.ActorID]primitives.ActorRef)}
}

// Add registers ref under id, replacing any previous occupant of that id
// (the caller is expected to have stopped the previous occupant already).
func (c *ChildRegistry) Add(id primitives.ActorID, ref primitives.ActorRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[id] = ref
}

// Get returns the child registered under id, if any.
func (c *ChildRegistry) Get(id primitives.ActorID) (primitives.ActorRef, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ref, ok := c.byID[id]
	return ref, ok
}

// Remove deregisters id without stopping it; callers that want the child
// stopped too should call Stop first.
func (c *ChildRegistry) Remove(id primitives.ActorID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byID, id)
}

// Stop stops and deregisters the child registered under id. Idempotent:
// a missing id is a no-op.
func (c *ChildRegistry) Stop(id primitives.ActorID) {
	c.mu.Lock()
	ref, ok := c.byID[id]
	if ok {
		delete(c.byID, id)
	}
	c.mu.Unlock()
	if ok {
		ref.Stop()
	}
}

// Snapshot returns a copy of the current id->ref map, safe to hand to a
// State.Children field without the caller holding the registry's lock.
func (c *ChildRegistry) Snapshot() map[primitives.ActorID]primitives.ActorRef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[primitives.ActorID]primitives.ActorRef, len(c.byID))
	for id, ref := range c.byID {
		out[id] = ref
	}
	return out
}

// StopAll stops every registered child concurrently and clears the
// registry. The call itself is synchronous from the caller's point of
// view: each child's Stop() runs concurrently with the others, but StopAll
// does not return until every one of those calls has returned.
func (c *ChildRegistry) StopAll() {
	c.mu.Lock()
	refs := make([]primitives.ActorRef, 0, len(c.byID))
	for id, ref := range c.byID {
		refs = append(refs, ref)
		delete(c.byID, id)
	}
	c.mu.Unlock()

	var g errgroup.Group
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			ref.Stop()
			return nil
		})
	}
	_ = g.Wait()
}

// Len reports the number of live children, for metrics.
func (c *ChildRegistry) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}
