package actor

import (
	"github.com/comalice/scxrt/internal/clock"
	"github.com/comalice/scxrt/internal/primitives"
	"github.com/comalice/scxrt/internal/registry"
)

// Option configures an Interpreter at construction time via the functional
// options pattern: identity, clock, logger, parent linkage, and the
// delayed-send registry are each one Option.
type Option func(*Interpreter)

// WithID overrides the default actor id: the definition's non-empty ID()
// when it has one, otherwise a random UUID.
func WithID(id primitives.ActorID) Option {
	return func(in *Interpreter) { in.id = id }
}

// WithLogger overrides the default production zap logger. Passing nil
// installs a logger that discards everything.
func WithLogger(l Logger) Option {
	return func(in *Interpreter) {
		if l == nil {
			l = noopLogger{}
		}
		in.logger = l
	}
}

// WithClock overrides the real-time clock, primarily for tests driven by a
// clock.SimulatedClock.
func WithClock(c clock.Clock) Option {
	return func(in *Interpreter) {
		if c != nil {
			in.clk = c
		}
	}
}

// WithParent links this interpreter to a parent ActorRef, enabling
// sendParent/respond actions and the parent's receipt of
// done.invoke./error.platform. events when this interpreter is running as
// a nested machine behavior.
func WithParent(ref primitives.ActorRef) Option {
	return func(in *Interpreter) { in.parent = ref }
}

// withParentRef is an unexported alias kept for call sites inside this
// package that want the intent ("this is an internal wiring step, not a
// user-facing option") to read clearly; it is identical to WithParent.
func withParentRef(ref primitives.ActorRef) Option { return WithParent(ref) }

// WithDeferEvents controls whether Send before Start/StartFrom buffers the
// event for delivery on entry (true, the default) or is
// reported as an UninitializedSendError and dropped (false).
func WithDeferEvents(enabled bool) Option {
	return func(in *Interpreter) { in.deferEvents = enabled }
}

// WithDelayedSendRegistry overrides the registry used for ActionSend's
// delayed/cancellable entries, primarily for tests that want direct
// visibility into outstanding timers via registry.Outstanding().
func WithDelayedSendRegistry(r *registry.DelayedSendRegistry) Option {
	return func(in *Interpreter) {
		if r != nil {
			in.delayed = r
		}
	}
}
