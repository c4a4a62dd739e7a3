package actor

import "github.com/comalice/scxrt/internal/primitives"

// flush drains the queue to quiescence, publishing exactly one state per
// externally processed event. Each event is committed by microstep, then
// every raised event and eventless ("always") transition it cascades into
// is drained by drainToQuiescence before the resting configuration is
// published — observers never see an intermediate transient configuration,
// only the final one per macrostep.
func (in *Interpreter) flush() {
	in.mu.Lock()
	if in.flushing {
		in.mu.Unlock()
		return
	}
	in.flushing = true
	in.mu.Unlock()

	defer func() {
		in.mu.Lock()
		in.flushing = false
		in.mu.Unlock()
	}()

	for {
		event, ok := in.popNext()
		if !ok {
			return
		}
		in.microstep(event)
		in.drainToQuiescence()
		in.publish(in.Snapshot())
	}
}

// popNext returns the next event to process: internal (raised) events take
// priority over externally sent ones, guaranteeing a raise always drains
// within the macrostep that raised it.
func (in *Interpreter) popNext() (primitives.Event, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.internalQueue) > 0 {
		ev := in.internalQueue[0]
		in.internalQueue = in.internalQueue[1:]
		return ev, true
	}
	if len(in.queue) > 0 {
		ev := in.queue[0]
		in.queue = in.queue[1:]
		return ev, true
	}
	return primitives.Event{}, false
}

// popInternal returns the next raised event only, leaving the external
// queue untouched, so draining a macrostep's cascade never interleaves an
// externally sent event ahead of a still-pending eventless transition.
func (in *Interpreter) popInternal() (primitives.Event, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.internalQueue) > 0 {
		ev := in.internalQueue[0]
		in.internalQueue = in.internalQueue[1:]
		return ev, true
	}
	return primitives.Event{}, false
}

// drainToQuiescence processes every raised event and eventless transition
// reachable from the current configuration, without publishing any
// intermediate state. The caller publishes once this returns.
func (in *Interpreter) drainToQuiescence() {
	for {
		if event, ok := in.popInternal(); ok {
			in.microstep(event)
			continue
		}
		if in.transientStep() {
			continue
		}
		return
	}
}

// microstep computes and commits exactly one transition for event and runs
// its actions. It does not publish; callers publish once the surrounding
// macrostep reaches quiescence.
func (in *Interpreter) microstep(event primitives.Event) {
	in.mu.Lock()
	current := in.state
	in.mu.Unlock()

	next := in.def.Transition(current, event)

	in.mu.Lock()
	in.state = next
	in.mu.Unlock()

	if next.Changed {
		in.logger.Transition(in.id, current.Value, next.Value, event)
	}
	in.runActions(next.Actions, event)
}

// transientStep fires at most one eventless ("always") transition by asking
// the definition to transition on the zero-value Event. It does not
// publish; callers loop until it reports no change, draining every
// transient transition the current configuration enables.
func (in *Interpreter) transientStep() bool {
	in.mu.Lock()
	current := in.state
	in.mu.Unlock()

	next := in.def.Transition(current, primitives.Event{})
	if !next.Changed {
		return false
	}

	in.mu.Lock()
	in.state = next
	in.mu.Unlock()

	in.logger.Transition(in.id, current.Value, next.Value, primitives.Event{})
	in.runActions(next.Actions, primitives.Event{})
	return true
}
