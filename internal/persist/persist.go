// Package persist serializes and rehydrates primitives.State as plain YAML
// records via gopkg.in/yaml.v3, operating purely in-memory on byte slices —
// callers needing a file-path-per-machine-id layout or other storage
// (file, database, wire) build it on top of Serialize/Deserialize.
package persist

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/scxrt/internal/primitives"
)

// wireRecord mirrors primitives.Record but replaces the unserializable
// closed-interface Actions field with actionRecord, a flat discriminated
// shape yaml.v3 can actually round-trip.
type wireRecord struct {
	Value        primitives.StateValue `yaml:"value"`
	Context      any                   `yaml:"context"`
	Actions      []actionRecord        `yaml:"actions,omitempty"`
	Children     []primitives.ActorID  `yaml:"children,omitempty"`
	HistoryValue map[string][]string   `yaml:"historyValue,omitempty"`
	Done         bool                  `yaml:"done"`
	Event        primitives.Event      `yaml:"event"`
}

// actionRecord is the serializable shape of one primitives.Action. Only
// literal (Static) action fields round-trip; an action carrying an Expr
// (EventExpr/DelayExpr/TargetExpr/IDExpr/LogExpr — a closure, not data) or
// an ActionStartChild's live Behavior cannot be serialized and is dropped
// rather than erroring.
type actionRecord struct {
	Kind     string           `yaml:"kind"`
	Event    primitives.Event `yaml:"event,omitempty"`
	To       primitives.ActorID `yaml:"to,omitempty"`
	HasDelay bool             `yaml:"hasDelay,omitempty"`
	DelayMS  int64            `yaml:"delayMs,omitempty"`
	ID       string           `yaml:"id,omitempty"`
	Message  string           `yaml:"message,omitempty"`
}

// Serialize converts state into its plain-record YAML encoding.
func Serialize(state primitives.State) ([]byte, error) {
	rec := state.ToRecord()
	wire := wireRecord{
		Value:        rec.Value,
		Context:      rec.Context,
		Children:     rec.Children,
		HistoryValue: rec.HistoryValue,
		Done:         rec.Done,
		Event:        rec.Event,
	}
	for _, a := range rec.Actions {
		if ar, ok := actionToRecord(a); ok {
			wire.Actions = append(wire.Actions, ar)
		}
	}
	data, err := yaml.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("persist: marshal state: %w", err)
	}
	return data, nil
}

// Deserialize rehydrates a State from bytes produced by Serialize. The
// Actions carried on the result are expected to be re-executed by the
// caller's start(restored) — Deserialize itself has no side effects.
func Deserialize(data []byte) (primitives.State, error) {
	var wire wireRecord
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return primitives.State{}, fmt.Errorf("persist: unmarshal state: %w", err)
	}
	rec := primitives.Record{
		Value:        wire.Value,
		Context:      wire.Context,
		Children:     wire.Children,
		HistoryValue: wire.HistoryValue,
		Done:         wire.Done,
		Event:        wire.Event,
	}
	for _, ar := range wire.Actions {
		if a, ok := actionFromRecord(ar); ok {
			rec.Actions = append(rec.Actions, a)
		}
	}
	return primitives.FromRecord(rec), nil
}

func actionToRecord(a primitives.Action) (actionRecord, bool) {
	switch v := a.(type) {
	case primitives.ActionSend:
		if v.Event.Expr != nil || v.To.Expr != nil || v.Delay.Expr != nil || v.ID.Expr != nil {
			return actionRecord{}, false
		}
		return actionRecord{
			Kind: "send", Event: v.Event.Static, To: v.To.Static,
			HasDelay: v.Delay.HasDelay, DelayMS: v.Delay.Static.Milliseconds(), ID: v.ID.Static,
		}, true
	case primitives.ActionCancel:
		if v.ID.Expr != nil {
			return actionRecord{}, false
		}
		return actionRecord{Kind: "cancel", ID: v.ID.Static}, true
	case primitives.ActionRaise:
		if v.Event.Expr != nil {
			return actionRecord{}, false
		}
		return actionRecord{Kind: "raise", Event: v.Event.Static}, true
	case primitives.ActionLog:
		if v.Expr != nil {
			return actionRecord{}, false
		}
		return actionRecord{Kind: "log", Message: v.Message}, true
	case primitives.ActionRespond:
		if v.Event.Expr != nil {
			return actionRecord{}, false
		}
		return actionRecord{Kind: "respond", Event: v.Event.Static}, true
	case primitives.ActionSendParent:
		if v.Event.Expr != nil {
			return actionRecord{}, false
		}
		return actionRecord{Kind: "sendParent", Event: v.Event.Static}, true
	case primitives.ActionStartChild:
		return actionRecord{Kind: "startChild", To: v.ID}, true
	case primitives.ActionStopChild:
		if v.Ref.Expr != nil {
			return actionRecord{}, false
		}
		return actionRecord{Kind: "stopChild", To: v.Ref.Static}, true
	default:
		return actionRecord{}, false
	}
}

func actionFromRecord(r actionRecord) (primitives.Action, bool) {
	switch r.Kind {
	case "send":
		return primitives.ActionSend{
			Event: primitives.StaticEvent(r.Event),
			To:    primitives.TargetArg{Static: r.To},
			Delay: primitives.DelayArg{HasDelay: r.HasDelay, Static: time.Duration(r.DelayMS) * time.Millisecond},
			ID:    primitives.IDArg{Static: r.ID},
		}, true
	case "cancel":
		return primitives.ActionCancel{ID: primitives.IDArg{Static: r.ID}}, true
	case "raise":
		return primitives.ActionRaise{Event: primitives.StaticEvent(r.Event)}, true
	case "log":
		return primitives.ActionLog{Message: r.Message}, true
	case "respond":
		return primitives.ActionRespond{Event: primitives.StaticEvent(r.Event)}, true
	case "sendParent":
		return primitives.ActionSendParent{Event: primitives.StaticEvent(r.Event)}, true
	case "startChild":
		return primitives.ActionStartChild{ID: r.To}, true
	case "stopChild":
		return primitives.ActionStopChild{Ref: primitives.TargetArg{Static: r.To}}, true
	default:
		return nil, false
	}
}
