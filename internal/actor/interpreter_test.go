package actor_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/comalice/scxrt/internal/actor"
	"github.com/comalice/scxrt/internal/behavior"
	"github.com/comalice/scxrt/internal/clock"
	"github.com/comalice/scxrt/internal/machinedef"
	"github.com/comalice/scxrt/internal/primitives"
)

func trafficLightDef(t *testing.T) *machinedef.Definition {
	t.Helper()
	def, err := machinedef.New(&machinedef.Config{
		ID:      "trafficLight",
		Initial: "red",
		States: map[string]*machinedef.StateConfig{
			"red":    {ID: "red", Type: machinedef.Atomic, On: map[string][]machinedef.TransitionConfig{"TIMER": {{Target: "green"}}}},
			"green":  {ID: "green", Type: machinedef.Atomic, On: map[string][]machinedef.TransitionConfig{"TIMER": {{Target: "yellow"}}}},
			"yellow": {ID: "yellow", Type: machinedef.Atomic, On: map[string][]machinedef.TransitionConfig{"TIMER": {{Target: "red"}}}},
		},
	})
	if err != nil {
		t.Fatalf("machinedef.New: %v", err)
	}
	return def
}

func TestInitialStateIsIdempotentAndSideEffectFree(t *testing.T) {
	def := trafficLightDef(t)
	a := def.InitialState()
	b := def.InitialState()
	if a.Value.Leaf != b.Value.Leaf {
		t.Fatalf("expected structurally identical initial states")
	}
}

func TestStartTwiceIsNoOp(t *testing.T) {
	def := trafficLightDef(t)
	in := actor.New(def)
	first := in.Start()
	second := in.Start()
	if first.Value.Leaf != second.Value.Leaf {
		t.Fatalf("expected Start to be idempotent")
	}
	if second.Value.Leaf != "red" {
		t.Fatalf("expected to remain on initial state red, got %q", second.Value.Leaf)
	}
}

func TestSendDrivesTransition(t *testing.T) {
	def := trafficLightDef(t)
	in := actor.New(def)
	in.Start()
	in.Send(primitives.NewEvent("TIMER"))
	if in.Snapshot().Value.Leaf != "green" {
		t.Fatalf("expected green, got %q", in.Snapshot().Value.Leaf)
	}
}

func TestSubscribeReplaysLatestAndFiresCompleteOnStop(t *testing.T) {
	def := trafficLightDef(t)
	in := actor.New(def)
	in.Start()

	var mu sync.Mutex
	var seen []string
	completed := false
	in.Subscribe(primitives.Observer{
		Next: func(s primitives.State) {
			mu.Lock()
			seen = append(seen, s.Value.Leaf)
			mu.Unlock()
		},
		Complete: func() {
			mu.Lock()
			completed = true
			mu.Unlock()
		},
	})

	mu.Lock()
	if len(seen) != 1 || seen[0] != "red" {
		t.Fatalf("expected replay of current state red, got %v", seen)
	}
	mu.Unlock()

	in.Stop()
	mu.Lock()
	defer mu.Unlock()
	if !completed {
		t.Fatalf("expected Complete to fire on Stop")
	}
}

func TestSendBeforeStartIsDeferredByDefault(t *testing.T) {
	def := trafficLightDef(t)
	in := actor.New(def)
	in.Send(primitives.NewEvent("TIMER"))
	in.Start()
	if in.Snapshot().Value.Leaf != "green" {
		t.Fatalf("expected deferred TIMER event to apply on start, got %q", in.Snapshot().Value.Leaf)
	}
}

func raiseOnEntryDef(t *testing.T) *machinedef.Definition {
	t.Helper()
	def, err := machinedef.New(&machinedef.Config{
		ID:      "raiser",
		Initial: "a",
		States: map[string]*machinedef.StateConfig{
			"a": {
				ID:   "a",
				Type: machinedef.Atomic,
				On: map[string][]machinedef.TransitionConfig{
					"GO": {{Target: "b"}},
				},
			},
			"b": {
				ID:    "b",
				Type:  machinedef.Atomic,
				Entry: []primitives.Action{primitives.ActionRaise{Event: primitives.StaticEvent(primitives.NewEvent("AUTO"))}},
				On: map[string][]machinedef.TransitionConfig{
					"AUTO": {{Target: "c"}},
				},
			},
			"c": {ID: "c", Type: machinedef.Atomic},
		},
	})
	if err != nil {
		t.Fatalf("machinedef.New: %v", err)
	}
	return def
}

func TestRaisedEventDrainsWithinSameMacrostep(t *testing.T) {
	def := raiseOnEntryDef(t)
	in := actor.New(def)
	in.Start()
	in.Send(primitives.NewEvent("GO"))
	if in.Snapshot().Value.Leaf != "c" {
		t.Fatalf("expected raised AUTO event to drive straight through to c, got %q", in.Snapshot().Value.Leaf)
	}
}

func transientChainDef(t *testing.T) *machinedef.Definition {
	t.Helper()
	def, err := machinedef.New(&machinedef.Config{
		ID:      "transientChain",
		Initial: "idle",
		States: map[string]*machinedef.StateConfig{
			"idle": {
				ID:   "idle",
				Type: machinedef.Atomic,
				On: map[string][]machinedef.TransitionConfig{
					"START": {{Target: "transient"}},
				},
			},
			"transient": {
				ID:   "transient",
				Type: machinedef.Atomic,
				On: map[string][]machinedef.TransitionConfig{
					"": {{Target: "next"}},
				},
			},
			"next": {ID: "next", Type: machinedef.Atomic},
		},
	})
	if err != nil {
		t.Fatalf("machinedef.New: %v", err)
	}
	return def
}

func TestObserversOnlySeeTheRestingStatePerMacrostep(t *testing.T) {
	def := transientChainDef(t)
	in := actor.New(def)
	in.Start()

	var mu sync.Mutex
	var seen []string
	in.Subscribe(primitives.Observer{
		Next: func(s primitives.State) {
			mu.Lock()
			seen = append(seen, s.Value.Leaf)
			mu.Unlock()
		},
	})

	in.Send(primitives.NewEvent("START"))

	mu.Lock()
	defer mu.Unlock()
	want := []string{"idle", "next"}
	if len(seen) != len(want) {
		t.Fatalf("expected observers to see only [idle, next], got %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected observers to see only [idle, next], got %v", seen)
		}
	}
}

func TestNextStateDoesNotMutateSnapshot(t *testing.T) {
	def := trafficLightDef(t)
	in := actor.New(def)
	in.Start()

	preview := in.NextState(primitives.NewEvent("TIMER"))
	if preview.Value.Leaf != "green" {
		t.Fatalf("expected preview of green, got %q", preview.Value.Leaf)
	}
	if in.Snapshot().Value.Leaf != "red" {
		t.Fatalf("expected NextState to leave the committed snapshot untouched, got %q", in.Snapshot().Value.Leaf)
	}

	// A repeated preview against the same committed state is side-effect-free.
	again := in.NextState(primitives.NewEvent("TIMER"))
	if again.Value.Leaf != preview.Value.Leaf {
		t.Fatalf("expected NextState to be a pure query")
	}
}

func TestInitialStateIsStableAcrossSends(t *testing.T) {
	def := trafficLightDef(t)
	in := actor.New(def)
	in.Start()
	in.Send(primitives.NewEvent("TIMER"))

	if got := in.InitialState().Value.Leaf; got != "red" {
		t.Fatalf("expected InitialState to remain red regardless of Snapshot, got %q", got)
	}
}

func TestOnDoneFiresExactlyOnce(t *testing.T) {
	def := delayedSendDef(t)
	simClock := clock.NewSimulatedClock()
	in := actor.New(def, actor.WithClock(simClock))

	var mu sync.Mutex
	fired := 0
	in.OnDone(func(primitives.State) {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	in.Start()
	simClock.Advance(100)

	mu.Lock()
	defer mu.Unlock()
	if fired != 1 {
		t.Fatalf("expected onDone to fire exactly once, fired %d times", fired)
	}
}

func TestOnDoneAfterAlreadyDoneFiresImmediately(t *testing.T) {
	def := delayedSendDef(t)
	simClock := clock.NewSimulatedClock()
	in := actor.New(def, actor.WithClock(simClock))
	in.Start()
	simClock.Advance(100)

	called := false
	in.OnDone(func(primitives.State) { called = true })
	if !called {
		t.Fatalf("expected OnDone to fire immediately for an already-done interpreter")
	}
}

func TestOnTransitionAndOff(t *testing.T) {
	def := trafficLightDef(t)
	in := actor.New(def)
	in.Start()

	var seen []string
	unsub := in.OnTransition(func(s primitives.State) {
		seen = append(seen, s.Value.Leaf)
	})

	// OnTransition replays the current state immediately, like Subscribe.
	if len(seen) != 1 || seen[0] != "red" {
		t.Fatalf("expected listener to be replayed red on registration, got %v", seen)
	}

	in.Send(primitives.NewEvent("TIMER"))
	if len(seen) != 2 || seen[1] != "green" {
		t.Fatalf("expected listener to observe green, got %v", seen)
	}

	in.Off(unsub)
	in.Send(primitives.NewEvent("TIMER"))
	if len(seen) != 2 {
		t.Fatalf("expected no further notifications after Off, got %v", seen)
	}
}

func TestSendToUnknownChildIsSilentNoOp(t *testing.T) {
	resolved := make(chan struct{})
	promiseBehavior := behavior.FromPromise(func(ctx context.Context, bctx behavior.Context) (any, error) {
		return 1, nil
	})

	def, err := machinedef.New(&machinedef.Config{
		ID:      "routed",
		Initial: "pending",
		States: map[string]*machinedef.StateConfig{
			"pending": {
				ID:   "pending",
				Type: machinedef.Atomic,
				Entry: []primitives.Action{
					primitives.ActionStartChild{ID: "child", Behavior: promiseBehavior},
				},
				On: map[string][]machinedef.TransitionConfig{
					"done.invoke.child": {{Target: "success"}},
				},
			},
			"success": {ID: "success", Type: machinedef.Final},
		},
	})
	if err != nil {
		t.Fatalf("machinedef.New: %v", err)
	}

	in := actor.New(def)
	in.Subscribe(primitives.Observer{Complete: func() { close(resolved) }})
	in.Start()

	// SendTo a child that does not exist is a silent no-op.
	in.SendTo("does-not-exist", primitives.NewEvent("PING"))

	select {
	case <-resolved:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the child's promise resolution")
	}
	if children := in.Children(); len(children) != 0 {
		t.Fatalf("expected no children once the machine is done, got %v", children)
	}
}

func TestClockReturnsConfiguredClock(t *testing.T) {
	def := trafficLightDef(t)
	simClock := clock.NewSimulatedClock()
	in := actor.New(def, actor.WithClock(simClock))
	if in.Clock() != clock.Clock(simClock) {
		t.Fatalf("expected Clock() to return the configured SimulatedClock")
	}
}

func delayedSendDef(t *testing.T) *machinedef.Definition {
	t.Helper()
	def, err := machinedef.New(&machinedef.Config{
		ID:      "afterTimer",
		Initial: "waiting",
		States: map[string]*machinedef.StateConfig{
			"waiting": {
				ID:   "waiting",
				Type: machinedef.Atomic,
				Entry: []primitives.Action{primitives.ActionSend{
					Event: primitives.StaticEvent(primitives.NewEvent("TIMEOUT")),
					Delay: primitives.DelayArg{HasDelay: true, Static: 100 * time.Millisecond},
					ID:    primitives.IDArg{Static: "timeout-1"},
				}},
				On: map[string][]machinedef.TransitionConfig{
					"TIMEOUT": {{Target: "done"}},
				},
			},
			"done": {ID: "done", Type: machinedef.Final},
		},
	})
	if err != nil {
		t.Fatalf("machinedef.New: %v", err)
	}
	return def
}

func TestDelayedSendFiresViaSimulatedClock(t *testing.T) {
	def := delayedSendDef(t)
	simClock := clock.NewSimulatedClock()
	in := actor.New(def, actor.WithClock(simClock))
	in.Start()
	if in.Snapshot().Value.Leaf != "waiting" {
		t.Fatalf("expected to still be waiting before the delay elapses, got %q", in.Snapshot().Value.Leaf)
	}
	simClock.Advance(100)
	if !in.Snapshot().Done {
		t.Fatalf("expected machine to be done after the delayed TIMEOUT fires")
	}
}

func TestCancelPreventsDelayedSendFromFiring(t *testing.T) {
	def, err := machinedef.New(&machinedef.Config{
		ID:      "cancelable",
		Initial: "waiting",
		States: map[string]*machinedef.StateConfig{
			"waiting": {
				ID:   "waiting",
				Type: machinedef.Atomic,
				Entry: []primitives.Action{
					primitives.ActionSend{
						Event: primitives.StaticEvent(primitives.NewEvent("TIMEOUT")),
						Delay: primitives.DelayArg{HasDelay: true, Static: 100 * time.Millisecond},
						ID:    primitives.IDArg{Static: "timeout-2"},
					},
					primitives.ActionCancel{ID: primitives.IDArg{Static: "timeout-2"}},
				},
				On: map[string][]machinedef.TransitionConfig{
					"TIMEOUT": {{Target: "done"}},
				},
			},
			"done": {ID: "done", Type: machinedef.Final},
		},
	})
	if err != nil {
		t.Fatalf("machinedef.New: %v", err)
	}
	simClock := clock.NewSimulatedClock()
	in := actor.New(def, actor.WithClock(simClock))
	in.Start()
	simClock.Advance(1000)
	if in.Snapshot().Done {
		t.Fatalf("expected cancelled delayed send to never fire")
	}
}

func TestChildActorLifecyclePromiseResolution(t *testing.T) {
	resolved := make(chan struct{})
	promiseBehavior := behavior.FromPromise(func(ctx context.Context, bctx behavior.Context) (any, error) {
		return 42, nil
	})

	def, err := machinedef.New(&machinedef.Config{
		ID:      "withChild",
		Initial: "pending",
		States: map[string]*machinedef.StateConfig{
			"pending": {
				ID:   "pending",
				Type: machinedef.Atomic,
				Entry: []primitives.Action{
					primitives.ActionStartChild{ID: "childActor", Behavior: promiseBehavior},
				},
				Exit: []primitives.Action{
					primitives.ActionStopChild{Ref: primitives.TargetArg{Static: "childActor"}},
				},
				On: map[string][]machinedef.TransitionConfig{
					"done.invoke.childActor": {{
						Target: "success",
						Guard: func(ctx any, event primitives.Event) bool {
							return event.Data == 42
						},
					}},
				},
			},
			"success": {ID: "success", Type: machinedef.Final},
		},
	})
	if err != nil {
		t.Fatalf("machinedef.New: %v", err)
	}

	in := actor.New(def)
	in.Subscribe(primitives.Observer{
		Complete: func() { close(resolved) },
	})
	in.Start()

	select {
	case <-resolved:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for promise child to resolve and machine to complete")
	}

	if !in.Snapshot().Done {
		t.Fatalf("expected machine to be done after promise resolution")
	}
	if _, ok := in.Snapshot().Children["childActor"]; ok {
		t.Fatalf("expected childActor to be absent from state.children after the transition away from pending")
	}
}
