// Package actor implements the interpreter: the runtime that drives a pure
// MachineDefinition to quiescence on each event, executes the actions it
// returns, and manages a tree of spawned/invoked child actors. It uses
// single-threaded cooperative scheduling guarded by a flushing flag, pluggable
// collaborators via functional options, and idempotent Start/Stop, built
// around a macrostep/microstep vocabulary with delayed sends, transient
// transitions, and an actor tree.
package actor

import (
	"sync"

	"github.com/google/uuid"

	"github.com/comalice/scxrt/internal/clock"
	"github.com/comalice/scxrt/internal/primitives"
	"github.com/comalice/scxrt/internal/registry"
)

// MachineDefinition is the pure contract a machine description must
// satisfy: InitialState and Transition never mutate shared state or
// perform I/O.
// *machinedef.Definition satisfies this; it is expressed as an interface
// here so internal/actor does not need to import internal/machinedef
// directly, keeping the dependency direction machinedef -> behavior ->
// actor (actor is the only package that needs to know about all three).
type MachineDefinition interface {
	InitialState() primitives.State
	Transition(state primitives.State, event primitives.Event) primitives.State
}

// Status reports where in its lifecycle an Interpreter is.
type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusStopped
)

// Interpreter is a single running statechart actor: exactly one of a
// top-level interpreter (no Parent) or a spawned/invoked child. It
// implements primitives.ActorRef so it can be addressed uniformly whether
// it is the root or a nested child.
type Interpreter struct {
	id     primitives.ActorID
	def    MachineDefinition
	parent primitives.ActorRef
	logger Logger
	clk    clock.Clock

	delayed  *registry.DelayedSendRegistry
	children *registry.ChildRegistry
	subs     *subscriberList

	deferEvents bool

	mu            sync.Mutex
	status        Status
	state         primitives.State
	queue         []primitives.Event // external, FIFO
	internalQueue []primitives.Event // raised, drained before queue within a macrostep
	flushing      bool               // reentrancy guard: Send during a flush only enqueues
	doneFired     bool
	doneCallbacks []func(primitives.State)
}

// New constructs an Interpreter around def, applying opts. It does not
// start the machine — call Start for that, keeping construction and
// startup as separate steps.
func New(def MachineDefinition, opts ...Option) *Interpreter {
	id := primitives.ActorID(uuid.NewString())
	if named, ok := def.(interface{ ID() string }); ok && named.ID() != "" {
		id = primitives.ActorID(named.ID())
	}
	in := &Interpreter{
		id:          id,
		def:         def,
		logger:      NewDefaultLogger(),
		clk:         clock.RealClock{},
		children:    registry.NewChildren(),
		subs:        newSubscriberList(),
		deferEvents: true,
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.delayed == nil {
		in.delayed = registry.New(in.clk)
	}
	return in
}

// ID returns this actor's identity within its parent's child registry.
func (in *Interpreter) ID() primitives.ActorID { return in.id }

// Status reports the interpreter's current lifecycle phase.
func (in *Interpreter) Status() Status {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.status
}

// Snapshot returns the most recently committed State. Safe to call from any
// goroutine; it never blocks on the flush loop.
func (in *Interpreter) Snapshot() primitives.State {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

// InitialState returns the machine definition's initial State, independent
// of whatever this interpreter's current Snapshot is. Computing it is
// side-effect-free and may be called at any point in the interpreter's
// lifecycle.
func (in *Interpreter) InitialState() primitives.State {
	return in.def.InitialState()
}

// NextState computes the State event would produce from the current
// Snapshot without committing it: no action runs, no child is spawned or
// stopped, and no subscriber is notified. Callers that want to preview the
// effect of an event (e.g. disabling a control an event would not affect)
// can call this freely from any goroutine.
func (in *Interpreter) NextState(event primitives.Event) primitives.State {
	return in.def.Transition(in.Snapshot(), event)
}

// Clock returns the clock.Clock backing this interpreter's delayed sends.
func (in *Interpreter) Clock() clock.Clock { return in.clk }

// Children returns a snapshot of this interpreter's currently live child
// actors, keyed by id. Mutating the returned map does not affect the
// interpreter's own registry.
func (in *Interpreter) Children() map[primitives.ActorID]primitives.ActorRef {
	return in.children.Snapshot()
}

// Start enters the initial configuration, executes its entry actions, and
// drains any transient transitions those actions or the initial state
// trigger as part of the startup macrostep. Calling Start twice is a no-op
// returning the current snapshot.
func (in *Interpreter) Start() primitives.State {
	return in.start(nil)
}

// StartFrom enters running state from a previously persisted State (e.g.
// via persist.Deserialize) instead of the definition's InitialState. Its
// carried Actions are executed on entry exactly as they would be for a
// freshly computed initial state.
func (in *Interpreter) StartFrom(restored primitives.State) primitives.State {
	return in.start(&restored)
}

func (in *Interpreter) start(restored *primitives.State) primitives.State {
	in.mu.Lock()
	if in.status != StatusNotStarted {
		defer in.mu.Unlock()
		return in.state
	}
	in.status = StatusRunning
	if restored != nil {
		in.state = *restored
	} else {
		in.state = in.def.InitialState()
	}
	in.mu.Unlock()

	in.runActions(in.state.Actions, primitives.Event{})
	in.drainToQuiescence()
	in.publish(in.Snapshot())
	in.flush()
	in.maybeComplete()
	return in.Snapshot()
}

// Stop halts the interpreter: cancels every outstanding delayed send, stops
// every child (recursively, via ChildRegistry.StopAll's errgroup-backed
// concurrent teardown), and fires Complete exactly once to subscribers.
// Idempotent: calling Stop after it has already stopped is a no-op.
func (in *Interpreter) Stop() {
	in.mu.Lock()
	if in.status == StatusStopped {
		in.mu.Unlock()
		return
	}
	in.status = StatusStopped
	in.mu.Unlock()

	in.delayed.CancelAll()
	in.logger.DelayedPendingChanged(in.id, in.delayed.Outstanding())
	in.children.StopAll()
	in.logger.ChildrenChanged(in.id, in.children.Len())
	in.logger.Stop(in.id)
	in.subs.Complete()
}

// Send enqueues event for processing. If a flush is already in progress on
// this goroutine (an action calling Send synchronously, or a concurrent
// goroutine racing the flush loop) the event is appended to the queue
// rather than recursively driving another flush.
func (in *Interpreter) Send(event primitives.Event) {
	in.mu.Lock()
	switch in.status {
	case StatusStopped:
		in.mu.Unlock()
		return
	case StatusNotStarted:
		if !in.deferEvents {
			in.mu.Unlock()
			in.logger.Error(in.id, &UninitializedSendError{ActorID: in.id, Event: event})
			return
		}
		// deferEvents: queue it now; Start()/StartFrom() will drain it as
		// part of the startup flush.
		in.queue = append(in.queue, event)
		in.mu.Unlock()
		return
	}
	if in.flushing {
		in.queue = append(in.queue, event)
		in.mu.Unlock()
		return
	}
	in.queue = append(in.queue, event)
	in.mu.Unlock()

	in.flush()
	in.maybeComplete()
}

// raise appends event to the internal queue, which is drained within the
// current macrostep ahead of any externally sent event still waiting.
func (in *Interpreter) raise(event primitives.Event) {
	in.mu.Lock()
	in.internalQueue = append(in.internalQueue, event)
	in.mu.Unlock()
}

// Subscribe registers obs for every future committed State, immediately
// replaying the current one if the interpreter has already started.
func (in *Interpreter) Subscribe(obs primitives.Observer) primitives.Unsubscribe {
	return in.subs.Subscribe(obs)
}

// OnTransition registers fn to run on every committed, published state —
// equivalent to Subscribe with only Next set. It returns an Unsubscribe
// handle; Go cannot compare function values the way an off(fn)
// event-emitter API does in other languages, so removal goes through the
// returned handle rather than the original fn.
func (in *Interpreter) OnTransition(fn func(primitives.State)) primitives.Unsubscribe {
	return in.Subscribe(primitives.Observer{Next: fn})
}

// Off removes a listener previously registered with OnTransition or
// Subscribe, given the Unsubscribe handle either call returned. Safe to
// call with nil.
func (in *Interpreter) Off(unsub primitives.Unsubscribe) {
	if unsub != nil {
		unsub()
	}
}

// OnDone registers fn to fire exactly once, the moment this interpreter
// reaches a top-level final state, before Stop tears down its children and
// subscriptions. If the interpreter is already done when OnDone is called,
// fn fires immediately with the current state.
func (in *Interpreter) OnDone(fn func(primitives.State)) {
	in.mu.Lock()
	if in.doneFired {
		state := in.state
		in.mu.Unlock()
		fn(state)
		return
	}
	in.doneCallbacks = append(in.doneCallbacks, fn)
	in.mu.Unlock()
}

// SendTo routes event directly to the child registered under childID,
// bypassing this interpreter's own queue. A childID with no live child is a
// silent no-op, the same way a send action drops an unknown target.
func (in *Interpreter) SendTo(childID primitives.ActorID, event primitives.Event) {
	if ref, ok := in.children.Get(childID); ok {
		ref.Send(event.WithOrigin(in.id))
	}
}

func (in *Interpreter) publish(state primitives.State) {
	in.subs.Next(state)
}

func (in *Interpreter) maybeComplete() {
	state := in.Snapshot()
	if !state.Done {
		return
	}
	in.mu.Lock()
	if in.doneFired {
		in.mu.Unlock()
		return
	}
	in.doneFired = true
	callbacks := in.doneCallbacks
	in.doneCallbacks = nil
	in.mu.Unlock()

	for _, fn := range callbacks {
		fn(state)
	}
	in.Stop()
}
