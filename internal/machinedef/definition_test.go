package machinedef_test

import (
	"testing"

	"go.uber.org/multierr"

	"github.com/comalice/scxrt/internal/machinedef"
	"github.com/comalice/scxrt/internal/primitives"
)

func trafficLightConfig() *machinedef.Config {
	return &machinedef.Config{
		ID:      "trafficLight",
		Initial: "red",
		States: map[string]*machinedef.StateConfig{
			"red": {
				ID:   "red",
				Type: machinedef.Atomic,
				On: map[string][]machinedef.TransitionConfig{
					"TIMER": {{Target: "green"}},
				},
			},
			"green": {
				ID:   "green",
				Type: machinedef.Atomic,
				On: map[string][]machinedef.TransitionConfig{
					"TIMER": {{Target: "yellow"}},
				},
			},
			"yellow": {
				ID:   "yellow",
				Type: machinedef.Atomic,
				On: map[string][]machinedef.TransitionConfig{
					"TIMER": {{Target: "red"}},
				},
			},
		},
	}
}

func TestInitialState(t *testing.T) {
	def, err := machinedef.New(trafficLightConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := def.InitialState()
	if st.Value.Leaf != "red" {
		t.Fatalf("expected initial leaf red, got %q", st.Value.Leaf)
	}
	if st.Done {
		t.Fatalf("expected not done")
	}
}

func TestAtomicTransition(t *testing.T) {
	def, err := machinedef.New(trafficLightConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := def.InitialState()
	st = def.Transition(st, primitives.NewEvent("TIMER"))
	if st.Value.Leaf != "green" {
		t.Fatalf("expected green, got %q", st.Value.Leaf)
	}
	if !st.Changed {
		t.Fatalf("expected changed")
	}
	st = def.Transition(st, primitives.NewEvent("TIMER"))
	if st.Value.Leaf != "yellow" {
		t.Fatalf("expected yellow, got %q", st.Value.Leaf)
	}
}

func TestUnknownEventDoesNotChangeState(t *testing.T) {
	def, err := machinedef.New(trafficLightConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := def.InitialState()
	next := def.Transition(st, primitives.NewEvent("NOPE"))
	if next.Changed {
		t.Fatalf("expected no change for unhandled event")
	}
	if next.Value.Leaf != "red" {
		t.Fatalf("expected to remain on red, got %q", next.Value.Leaf)
	}
}

func nestedConfig() *machinedef.Config {
	return &machinedef.Config{
		ID:      "player",
		Initial: "playback",
		States: map[string]*machinedef.StateConfig{
			"playback": {
				ID:      "playback",
				Type:    machinedef.Compound,
				Initial: "playing",
				On: map[string][]machinedef.TransitionConfig{
					"STOP": {{Target: "idle"}},
				},
				Children: []*machinedef.StateConfig{
					{
						ID:   "playing",
						Type: machinedef.Atomic,
						On: map[string][]machinedef.TransitionConfig{
							"PAUSE": {{Target: "playback.paused"}},
						},
					},
					{
						ID:   "paused",
						Type: machinedef.Atomic,
						On: map[string][]machinedef.TransitionConfig{
							"PLAY": {{Target: "playback.playing"}},
						},
					},
				},
			},
			"idle": {ID: "idle", Type: machinedef.Atomic},
		},
	}
}

func TestNestedCompoundTransitionAndUpwardBubble(t *testing.T) {
	def, err := machinedef.New(nestedConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := def.InitialState()
	if st.Value.Leaf != "playback.playing" {
		t.Fatalf("expected playback.playing, got %q", st.Value.Leaf)
	}

	st = def.Transition(st, primitives.NewEvent("PAUSE"))
	if st.Value.Leaf != "playback.paused" {
		t.Fatalf("expected playback.paused, got %q", st.Value.Leaf)
	}

	// STOP is only handled on the ancestor "playback" state, not "paused" —
	// the search must bubble up through ancestors.
	st = def.Transition(st, primitives.NewEvent("STOP"))
	if st.Value.Leaf != "idle" {
		t.Fatalf("expected idle, got %q", st.Value.Leaf)
	}
}

func parallelConfig() *machinedef.Config {
	return &machinedef.Config{
		ID:      "media",
		Initial: "player",
		States: map[string]*machinedef.StateConfig{
			"player": {
				ID:   "player",
				Type: machinedef.Parallel,
				Children: []*machinedef.StateConfig{
					{
						ID:      "audio",
						Type:    machinedef.Compound,
						Initial: "muted",
						Children: []*machinedef.StateConfig{
							{ID: "muted", Type: machinedef.Atomic, On: map[string][]machinedef.TransitionConfig{
								"UNMUTE": {{Target: "player.audio.unmuted"}},
							}},
							{ID: "unmuted", Type: machinedef.Atomic},
						},
					},
					{
						ID:      "video",
						Type:    machinedef.Compound,
						Initial: "paused",
						Children: []*machinedef.StateConfig{
							{ID: "paused", Type: machinedef.Atomic, On: map[string][]machinedef.TransitionConfig{
								"PLAY": {{Target: "player.video.playing"}},
							}},
							{ID: "playing", Type: machinedef.Atomic},
						},
					},
				},
			},
		},
	}
}

func TestParallelRegionsTransitionIndependently(t *testing.T) {
	def, err := machinedef.New(parallelConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := def.InitialState()
	if !st.Value.IsParallel() {
		t.Fatalf("expected parallel state value")
	}
	if st.Value.Parallel["audio"].Leaf != "player.audio.muted" {
		t.Fatalf("expected audio muted, got %+v", st.Value.Parallel["audio"])
	}
	if st.Value.Parallel["video"].Leaf != "player.video.paused" {
		t.Fatalf("expected video paused, got %+v", st.Value.Parallel["video"])
	}

	st = def.Transition(st, primitives.NewEvent("UNMUTE"))
	if st.Value.Parallel["audio"].Leaf != "player.audio.unmuted" {
		t.Fatalf("expected audio unmuted after UNMUTE, got %+v", st.Value.Parallel["audio"])
	}
	if st.Value.Parallel["video"].Leaf != "player.video.paused" {
		t.Fatalf("expected video region untouched by UNMUTE, got %+v", st.Value.Parallel["video"])
	}

	st = def.Transition(st, primitives.NewEvent("PLAY"))
	if st.Value.Parallel["video"].Leaf != "player.video.playing" {
		t.Fatalf("expected video playing after PLAY, got %+v", st.Value.Parallel["video"])
	}
}

func historyConfig() *machinedef.Config {
	return &machinedef.Config{
		ID:      "wizard",
		Initial: "active",
		States: map[string]*machinedef.StateConfig{
			"active": {
				ID:      "active",
				Type:    machinedef.Compound,
				Initial: "stepOne",
				On: map[string][]machinedef.TransitionConfig{
					"SUSPEND": {{Target: "suspended"}},
				},
				Children: []*machinedef.StateConfig{
					{ID: "stepOne", Type: machinedef.Atomic, On: map[string][]machinedef.TransitionConfig{
						"NEXT": {{Target: "active.stepTwo"}},
					}},
					{ID: "stepTwo", Type: machinedef.Atomic},
					{ID: "hist", Type: machinedef.ShallowHistory},
				},
			},
			"suspended": {
				ID:   "suspended",
				Type: machinedef.Atomic,
				On: map[string][]machinedef.TransitionConfig{
					"RESUME": {{Target: "active.hist"}},
				},
			},
		},
	}
}

func TestShallowHistoryRestoresLastActiveChild(t *testing.T) {
	def, err := machinedef.New(historyConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := def.InitialState()
	st = def.Transition(st, primitives.NewEvent("NEXT"))
	if st.Value.Leaf != "active.stepTwo" {
		t.Fatalf("expected active.stepTwo, got %q", st.Value.Leaf)
	}
	st = def.Transition(st, primitives.NewEvent("SUSPEND"))
	if st.Value.Leaf != "suspended" {
		t.Fatalf("expected suspended, got %q", st.Value.Leaf)
	}
	st = def.Transition(st, primitives.NewEvent("RESUME"))
	if st.Value.Leaf != "active.stepTwo" {
		t.Fatalf("expected history to restore active.stepTwo, got %q", st.Value.Leaf)
	}
}

func TestValidateAccumulatesMultipleErrors(t *testing.T) {
	cfg := &machinedef.Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if got := len(multierr.Errors(err)); got != 3 {
		t.Fatalf("expected 3 accumulated errors (id, initial, states), got %d: %v", got, err)
	}
}

func TestFinalStateMarksDone(t *testing.T) {
	cfg := &machinedef.Config{
		ID:      "job",
		Initial: "running",
		States: map[string]*machinedef.StateConfig{
			"running": {ID: "running", Type: machinedef.Atomic, On: map[string][]machinedef.TransitionConfig{
				"FINISH": {{Target: "done"}},
			}},
			"done": {ID: "done", Type: machinedef.Final},
		},
	}
	def, err := machinedef.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := def.InitialState()
	st = def.Transition(st, primitives.NewEvent("FINISH"))
	if !st.Done {
		t.Fatalf("expected Done after reaching final state")
	}
}
