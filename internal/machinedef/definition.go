package machinedef

import (
	"fmt"
	"sort"
	"strings"

	"github.com/comalice/scxrt/internal/primitives"
)

// Definition is a pure MachineDefinition: InitialState and Transition never
// mutate shared state, spawn actors, or fire actions themselves — they only
// compute and return the next descriptor. The actual side effects (running
// the returned Actions) are the interpreter's job (internal/actor).
//
// The transition algorithm computes the least common compound ancestor of
// the source and target paths (computeLCCA/getExitStates/getEntryStates in
// paths.go) and picks among candidate transitions found by walking every
// active leaf's ancestor chain, tracking multiple concurrently active
// leaves so parallel regions transition independently of one another.
type Definition struct {
	cfg           *Config
	initialLeaves []string
}

// New validates cfg and precomputes the initial leaf configuration,
// surfacing InvalidInitialStateError-shaped problems at construction time
// rather than deferring them to the first Transition call.
func New(cfg *Config) (*Definition, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine config: %w", err)
	}
	leaves, extra := resolveEntryChain(cfg, cfg.Initial, nil)
	_ = extra
	if len(leaves) == 0 {
		return nil, fmt.Errorf("machine %q: initial state %q does not resolve to any leaf", cfg.ID, cfg.Initial)
	}
	return &Definition{cfg: cfg, initialLeaves: leaves}, nil
}

// ID returns the machine's configured id, used as the interpreter's default
// id when none is supplied via options.
func (d *Definition) ID() string { return d.cfg.ID }

// InitialState returns the machine's initial State. Reading it repeatedly
// is side-effect-free — it recomputes the same value every time and
// touches no shared mutable state.
func (d *Definition) InitialState() primitives.State {
	_, extra := resolveEntryChain(d.cfg, d.cfg.Initial, nil)
	entryPaths := append(append([]string{}, getAncestors(d.cfg.Initial)...), extra...)
	entryPaths = dedupPreserveOrder(entryPaths)

	var actions []primitives.Action
	for _, p := range entryPaths {
		if st, err := d.cfg.FindState(p); err == nil {
			actions = append(actions, st.Entry...)
		}
	}

	value := toPrimitiveValue(buildValue(d.cfg, d.initialLeaves))
	return primitives.State{
		Value:        value,
		Context:      d.cfg.Context,
		Actions:      actions,
		Children:     map[primitives.ActorID]primitives.ActorRef{},
		Changed:      true,
		Done:         d.isDone(d.initialLeaves),
		Event:        primitives.Event{},
		HistoryValue: map[string][]string{},
	}
}

type candidateTransition struct {
	sourcePath string
	trans      TransitionConfig
}

// Transition implements the pure machine.transition(state, event) -> state
// contract.
func (d *Definition) Transition(state primitives.State, event primitives.Event) primitives.State {
	activeLeaves := leavesFromPrimitive(state.Value)
	if len(activeLeaves) == 0 {
		activeLeaves = d.initialLeaves
	}

	candidates := d.findCandidates(activeLeaves, state.Context, event)
	if len(candidates) == 0 {
		next := state
		next.Changed = false
		next.Actions = nil
		next.Event = event
		return next
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].trans.Priority > candidates[j].trans.Priority
	})
	chosen := candidates[0]

	if chosen.trans.Target == "" {
		// Internal/targetless transition: actions run, configuration unchanged.
		next := state
		next.Actions = append([]primitives.Action{}, chosen.trans.Actions...)
		next.Changed = true
		next.Event = event
		return next
	}

	return d.fireTransition(state, event, activeLeaves, chosen.sourcePath, chosen.trans)
}

func (d *Definition) findCandidates(activeLeaves []string, ctx any, event primitives.Event) []candidateTransition {
	var candidates []candidateTransition
	seen := map[string]bool{}
	for _, leaf := range activeLeaves {
		for _, ancestorPath := range getAncestors(leaf) {
			if seen[ancestorPath] {
				continue
			}
			seen[ancestorPath] = true
			st, err := d.cfg.FindState(ancestorPath)
			if err != nil {
				continue
			}
			for _, t := range st.On[event.Type] {
				if t.Guard == nil || t.Guard(ctx, event) {
					candidates = append(candidates, candidateTransition{sourcePath: ancestorPath, trans: t})
				}
			}
		}
	}
	return candidates
}

func (d *Definition) fireTransition(state primitives.State, event primitives.Event, activeLeaves []string, sourcePath string, trans TransitionConfig) primitives.State {
	targetPath := trans.Target
	lcca := computeLCCA(sourcePath, targetPath)

	var exitedLeaves []string
	exitSet := map[string]bool{}
	for _, leaf := range activeLeaves {
		if isUnder(leaf, sourcePath) {
			exitedLeaves = append(exitedLeaves, leaf)
			for _, anc := range getAncestors(leaf) {
				if isUnder(anc, sourcePath) {
					exitSet[anc] = true
				}
			}
		}
	}
	for _, p := range getExitStates(sourcePath, lcca) {
		exitSet[p] = true
	}
	exitPaths := make([]string, 0, len(exitSet))
	for p := range exitSet {
		exitPaths = append(exitPaths, p)
	}
	sort.Slice(exitPaths, func(i, j int) bool {
		di, dj := depth(exitPaths[i]), depth(exitPaths[j])
		if di != dj {
			return di > dj // innermost (deepest) first
		}
		return exitPaths[i] > exitPaths[j]
	})

	newHistory := recordHistory(d.cfg, state.HistoryValue, exitPaths, activeLeaves)

	entryPaths := getEntryStates(lcca, targetPath)
	newLeaves, extraEntry := resolveEntryChain(d.cfg, targetPath, newHistory)
	entryOrderedPaths := dedupPreserveOrder(append(append([]string{}, entryPaths...), extraEntry...))

	remaining := make([]string, 0, len(activeLeaves))
	exitedSet := map[string]bool{}
	for _, l := range exitedLeaves {
		exitedSet[l] = true
	}
	for _, l := range activeLeaves {
		if !exitedSet[l] {
			remaining = append(remaining, l)
		}
	}
	finalLeaves := append(remaining, newLeaves...)

	var actions []primitives.Action
	for _, p := range exitPaths {
		if st, err := d.cfg.FindState(p); err == nil {
			actions = append(actions, st.Exit...)
		}
	}
	actions = append(actions, trans.Actions...)
	for _, p := range entryOrderedPaths {
		if st, err := d.cfg.FindState(p); err == nil {
			actions = append(actions, st.Entry...)
		}
	}

	value := toPrimitiveValue(buildValue(d.cfg, finalLeaves))
	return primitives.State{
		Value:        value,
		Context:      state.Context,
		Actions:      actions,
		Children:     state.Children,
		Changed:      true,
		Done:         d.isDone(finalLeaves),
		Event:        event,
		HistoryValue: newHistory,
	}
}

func (d *Definition) isDone(leaves []string) bool {
	for _, l := range leaves {
		if strings.Contains(l, ".") {
			continue // only a top-level final state ends the machine
		}
		if st, err := d.cfg.FindState(l); err == nil && st.Type == Final {
			return true
		}
	}
	return false
}

func depth(path string) int { return strings.Count(path, ".") }

func dedupPreserveOrder(paths []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// resolveEntryChain drills from targetPath down to its active leaves,
// consulting history for ShallowHistory/DeepHistory pseudostates, and
// reports every intermediate path traversed below targetPath (for firing
// their Entry actions), outer to inner.
func resolveEntryChain(cfg *Config, targetPath string, history map[string][]string) (leaves []string, extraEntry []string) {
	st, err := cfg.FindState(targetPath)
	if err != nil {
		return []string{targetPath}, nil
	}
	switch st.Type {
	case Compound:
		childPath := targetPath + "." + st.Initial
		subLeaves, subExtra := resolveEntryChain(cfg, childPath, history)
		return subLeaves, append([]string{childPath}, subExtra...)
	case Parallel:
		var allLeaves, allExtra []string
		for _, child := range st.Children {
			childPath := targetPath + "." + child.ID
			subLeaves, subExtra := resolveEntryChain(cfg, childPath, history)
			allLeaves = append(allLeaves, subLeaves...)
			allExtra = append(allExtra, append([]string{childPath}, subExtra...)...)
		}
		return allLeaves, allExtra
	case ShallowHistory, DeepHistory:
		if recorded, ok := restoreHistory(history, targetPath); ok {
			var allLeaves, allExtra []string
			for _, childPath := range recorded {
				subLeaves, subExtra := resolveEntryChain(cfg, childPath, history)
				allLeaves = append(allLeaves, subLeaves...)
				allExtra = append(allExtra, subExtra...)
			}
			return allLeaves, allExtra
		}
		parentPath := parentOf(targetPath)
		parentSt, err := cfg.FindState(parentPath)
		if err != nil || parentSt.Initial == "" {
			return nil, nil
		}
		childPath := parentPath + "." + parentSt.Initial
		subLeaves, subExtra := resolveEntryChain(cfg, childPath, history)
		return subLeaves, append([]string{childPath}, subExtra...)
	default: // Atomic, Final
		return []string{targetPath}, nil
	}
}

func parentOf(path string) string {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return ""
	}
	return path[:i]
}

func toPrimitiveValue(v stateValue) primitives.StateValue {
	if !v.parallel() {
		return primitives.Leaf(v.leaf)
	}
	m := make(map[string]primitives.StateValue, len(v.children))
	for k, sub := range v.children {
		m[k] = toPrimitiveValue(sub)
	}
	return primitives.StateValue{Parallel: m}
}

func leavesFromPrimitive(v primitives.StateValue) []string {
	if !v.IsParallel() {
		if v.Leaf == "" {
			return nil
		}
		return []string{v.Leaf}
	}
	var out []string
	for _, sub := range v.Parallel {
		out = append(out, leavesFromPrimitive(sub)...)
	}
	return out
}
