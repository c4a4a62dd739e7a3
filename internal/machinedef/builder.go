package machinedef

import "github.com/comalice/scxrt/internal/primitives"

// MachineBuilder is fluent construction sugar over Config, built on string
// state IDs rather than sequential integer ids since the dot-path
// addressing used throughout paths.go needs stable string keys.
type MachineBuilder struct {
	cfg *Config
}

// NewMachine starts a builder for a machine with the given id.
func NewMachine(id string) *MachineBuilder {
	return &MachineBuilder{cfg: &Config{ID: id, States: map[string]*StateConfig{}}}
}

// Initial sets the machine's initial top-level state.
func (b *MachineBuilder) Initial(id string) *MachineBuilder {
	b.cfg.Initial = id
	return b
}

// Context sets the machine's starting context value.
func (b *MachineBuilder) Context(ctx any) *MachineBuilder {
	b.cfg.Context = ctx
	return b
}

// State starts a builder for a top-level state.
func (b *MachineBuilder) State(id string) *StateBuilder {
	sc := &StateConfig{ID: id, Type: Atomic, On: map[string][]TransitionConfig{}}
	b.cfg.States[id] = sc
	return &StateBuilder{machine: b, cfg: sc}
}

// Build finalizes and validates the configuration.
func (b *MachineBuilder) Build() (*Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	return b.cfg, nil
}

// StateBuilder builds a single StateConfig.
type StateBuilder struct {
	machine *MachineBuilder
	cfg     *StateConfig
}

// Type sets the state's type (Atomic by default).
func (s *StateBuilder) Type(t StateType) *StateBuilder {
	s.cfg.Type = t
	return s
}

// InitialChild sets the initial child id for a Compound state.
func (s *StateBuilder) InitialChild(id string) *StateBuilder {
	s.cfg.Initial = id
	s.cfg.Type = Compound
	return s
}

// Entry appends entry actions.
func (s *StateBuilder) Entry(actions ...primitives.Action) *StateBuilder {
	s.cfg.Entry = append(s.cfg.Entry, actions...)
	return s
}

// Exit appends exit actions.
func (s *StateBuilder) Exit(actions ...primitives.Action) *StateBuilder {
	s.cfg.Exit = append(s.cfg.Exit, actions...)
	return s
}

// On registers a transition for the given event type. Use "" for an
// eventless/always transition.
func (s *StateBuilder) On(event, target string, opts ...TransitionOption) *StateBuilder {
	t := TransitionConfig{Target: target}
	for _, opt := range opts {
		opt(&t)
	}
	s.cfg.On[event] = append(s.cfg.On[event], t)
	return s
}

// Child starts a builder for a nested state, marking the parent Compound if
// it has no explicit type set yet via Type/InitialChild.
func (s *StateBuilder) Child(id string) *StateBuilder {
	child := &StateConfig{ID: id, Type: Atomic, On: map[string][]TransitionConfig{}}
	if s.cfg.Type == Atomic {
		s.cfg.Type = Compound
	}
	s.cfg.Children = append(s.cfg.Children, child)
	return &StateBuilder{machine: s.machine, cfg: child}
}

// Parallel marks this state as a parallel composite of its (already added)
// children.
func (s *StateBuilder) Parallel() *StateBuilder {
	s.cfg.Type = Parallel
	return s
}

// End returns to the enclosing machine builder. For top-level states this is
// the MachineBuilder itself; nested Child builders should call End to return
// to the parent StateBuilder's machine for further top-level State calls.
func (s *StateBuilder) End() *MachineBuilder {
	return s.machine
}

// TransitionOption configures a TransitionConfig built via StateBuilder.On.
type TransitionOption func(*TransitionConfig)

// WithGuard attaches a guard predicate.
func WithGuard(g Guard) TransitionOption {
	return func(t *TransitionConfig) { t.Guard = g }
}

// WithActions attaches actions to run on the transition.
func WithActions(actions ...primitives.Action) TransitionOption {
	return func(t *TransitionConfig) { t.Actions = append(t.Actions, actions...) }
}

// WithPriority overrides the default priority (0) used to break ties among
// multiple enabled transitions across nested active states.
func WithPriority(p int) TransitionOption {
	return func(t *TransitionConfig) { t.Priority = p }
}
