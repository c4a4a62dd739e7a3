package scxrt

import "github.com/comalice/scxrt/internal/machinedef"

// MachineBuilder is fluent construction sugar for describing a machine
// declaratively, without callers reaching into an internal package.
type MachineBuilder = machinedef.MachineBuilder

// StateBuilder builds a single state within a MachineBuilder.
type StateBuilder = machinedef.StateBuilder

// TransitionOption configures a transition registered via StateBuilder.On.
type TransitionOption = machinedef.TransitionOption

// Guard evaluates whether a transition may be taken.
type Guard = machinedef.Guard

// StateType selects a state's kind.
type StateType = machinedef.StateType

const (
	Atomic         = machinedef.Atomic
	Compound       = machinedef.Compound
	Parallel       = machinedef.Parallel
	Final          = machinedef.Final
	ShallowHistory = machinedef.ShallowHistory
	DeepHistory    = machinedef.DeepHistory
)

// NewMachine starts a builder for a machine with the given id.
func NewMachine(id string) *MachineBuilder { return machinedef.NewMachine(id) }

// WithGuard attaches a guard predicate to a transition.
func WithGuard(g Guard) TransitionOption { return machinedef.WithGuard(g) }

// WithActions attaches actions to a transition.
func WithActions(actions ...Action) TransitionOption { return machinedef.WithActions(actions...) }

// WithPriority overrides a transition's tie-breaking priority.
func WithPriority(p int) TransitionOption { return machinedef.WithPriority(p) }

// NewDefinition validates cfg and builds the MachineDefinition Interpret
// needs. cfg is ordinarily produced by NewMachine(...).Build().
func NewDefinition(cfg *machinedef.Config) (MachineDefinition, error) {
	return machinedef.New(cfg)
}
