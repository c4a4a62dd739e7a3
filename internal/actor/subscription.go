package actor

import (
	"sync"

	"github.com/comalice/scxrt/internal/primitives"
)

// subscriberList manages a set of primitives.Observer subscriptions with
// replay-latest-on-subscribe semantics and a guaranteed single Complete()
// call per subscriber, delivered as direct synchronous callbacks since
// Observer.Next here is a plain function, not a channel consumer.
type subscriberList struct {
	mu        sync.Mutex
	next      uint64
	observers map[uint64]primitives.Observer
	completed map[uint64]bool
	latest    primitives.State
	hasLatest bool
	closed    bool
}

func newSubscriberList() *subscriberList {
	return &subscriberList{
		observers: map[uint64]primitives.Observer{},
		completed: map[uint64]bool{},
	}
}

// Subscribe registers obs, immediately replaying the latest known state (if
// any) via obs.Next, and returns an Unsubscribe func. If the list is
// already closed, obs.Complete is invoked synchronously instead.
func (s *subscriberList) Subscribe(obs primitives.Observer) primitives.Unsubscribe {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		if obs.Complete != nil {
			obs.Complete()
		}
		return func() {}
	}
	id := s.next
	s.next++
	s.observers[id] = obs
	latest, hasLatest := s.latest, s.hasLatest
	s.mu.Unlock()

	if hasLatest && obs.Next != nil {
		obs.Next(latest)
	}

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		delete(s.completed, id)
		s.mu.Unlock()
	}
}

// Next broadcasts state to every current subscriber and records it as the
// replay value for future subscribers.
func (s *subscriberList) Next(state primitives.State) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.latest = state
	s.hasLatest = true
	obs := make([]primitives.Observer, 0, len(s.observers))
	for _, o := range s.observers {
		obs = append(obs, o)
	}
	s.mu.Unlock()

	for _, o := range obs {
		if o.Next != nil {
			o.Next(state)
		}
	}
}

// Error broadcasts err to every current subscriber.
func (s *subscriberList) Error(err error) {
	s.mu.Lock()
	obs := make([]primitives.Observer, 0, len(s.observers))
	for _, o := range s.observers {
		obs = append(obs, o)
	}
	s.mu.Unlock()

	for _, o := range obs {
		if o.Error != nil {
			o.Error(err)
		}
	}
}

// Complete fires Complete exactly once per subscriber, ever, and marks the
// list closed so later Subscribe calls get an immediate Complete instead of
// joining a dead stream.
func (s *subscriberList) Complete() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	obs := make([]primitives.Observer, 0, len(s.observers))
	ids := make([]uint64, 0, len(s.observers))
	for id, o := range s.observers {
		if s.completed[id] {
			continue
		}
		obs = append(obs, o)
		ids = append(ids, id)
	}
	for _, id := range ids {
		s.completed[id] = true
	}
	s.mu.Unlock()

	for _, o := range obs {
		if o.Complete != nil {
			o.Complete()
		}
	}
}
