// Package machinedef is the concrete "machine builder" collaborator: a
// declarative description of states, transitions, entry/exit actions,
// guards, and delays, kept separate from the interpreter itself. It
// exists so the interpreter (internal/actor) has a concrete, pure
// MachineDefinition to drive end to end.
package machinedef

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/comalice/scxrt/internal/primitives"
)

// StateType selects a state's kind.
type StateType string

const (
	Atomic         StateType = "atomic"
	Compound       StateType = "compound"
	Parallel       StateType = "parallel"
	Final          StateType = "final"
	ShallowHistory StateType = "shallowHistory"
	DeepHistory    StateType = "deepHistory"
)

// Guard evaluates whether a transition may be taken.
type Guard func(ctx any, event primitives.Event) bool

// TransitionConfig defines one outgoing edge, event-triggered, optionally
// guarded, carrying resolved actions and a priority used to break ties
// when multiple transitions are enabled across nested active states.
type TransitionConfig struct {
	Target   string
	Guard    Guard
	Actions  []primitives.Action
	Priority int
	// An eventless/always transition is one stored under the "" key of the
	// owning StateConfig.On map.
}

// StateConfig defines one node of the state tree.
type StateConfig struct {
	ID       string
	Type     StateType
	Initial  string
	On       map[string][]TransitionConfig // event type -> transitions; "" key = always/eventless
	Entry    []primitives.Action
	Exit     []primitives.Action
	Children []*StateConfig
}

// Config is the top-level machine description.
type Config struct {
	ID      string
	Initial string
	Context any
	States  map[string]*StateConfig
}

// Validate checks the whole configuration, accumulating every problem found
// via go.uber.org/multierr instead of stopping at the first one, so a
// caller sees every misconfigured state or transition in one pass.
func (c *Config) Validate() error {
	var errs error
	if c.ID == "" {
		errs = multierr.Append(errs, fmt.Errorf("machine ID is required"))
	}
	if c.Initial == "" {
		errs = multierr.Append(errs, fmt.Errorf("initial state ID is required"))
	}
	if len(c.States) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("states map is required and cannot be empty"))
	}
	if c.Initial != "" {
		if _, ok := c.States[c.Initial]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("initial state %q not found in states", c.Initial))
		}
	}
	for id, st := range c.States {
		if err := st.validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("state %q: %w", id, err))
		}
	}
	for id, st := range c.States {
		if err := st.validateTargets(c); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("state %q: %w", id, err))
		}
	}
	return errs
}

func (s *StateConfig) validate() error {
	var errs error
	if s.ID == "" {
		errs = multierr.Append(errs, fmt.Errorf("state ID is required"))
	}
	switch s.Type {
	case Atomic, Final:
		if len(s.Children) > 0 {
			errs = multierr.Append(errs, fmt.Errorf("atomic/final state %s cannot have children", s.ID))
		}
	case Compound, Parallel:
		if len(s.Children) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("%s state %s requires children", s.Type, s.ID))
		}
		if s.Type == Compound && s.Initial == "" {
			errs = multierr.Append(errs, fmt.Errorf("compound state %s requires an initial child", s.ID))
		}
	case ShallowHistory, DeepHistory:
		if len(s.Children) > 0 {
			errs = multierr.Append(errs, fmt.Errorf("history state %s cannot declare children", s.ID))
		}
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown state type %q for state %s", s.Type, s.ID))
	}
	for _, child := range s.Children {
		if err := child.validate(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (s *StateConfig) validateTargets(c *Config) error {
	var errs error
	for event, transitions := range s.On {
		if len(transitions) == 0 {
			continue
		}
		_ = event
		for _, t := range transitions {
			if t.Target == "" {
				continue // internal/targetless transition
			}
			if _, err := c.FindState(t.Target); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("transition target %q not found: %w", t.Target, err))
			}
		}
	}
	for _, child := range s.Children {
		if err := child.validateTargets(c); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// FindState resolves a dot-separated hierarchical path against the flat
// top-level States map plus nested Children.
func (c *Config) FindState(path string) (*StateConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	segments := strings.Split(path, ".")
	current, ok := c.States[segments[0]]
	if !ok {
		return nil, fmt.Errorf("state %q not found", segments[0])
	}
	for i := 1; i < len(segments); i++ {
		seg := segments[i]
		found := false
		for _, child := range current.Children {
			if child.ID == seg {
				current = child
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("child %q not found under %q", seg, strings.Join(segments[:i], "."))
		}
	}
	return current, nil
}

// MustFind panics if path does not resolve; used only internally on paths
// the transition algorithm itself already validated.
func (c *Config) MustFind(path string) *StateConfig {
	st, err := c.FindState(path)
	if err != nil {
		panic(err)
	}
	return st
}
