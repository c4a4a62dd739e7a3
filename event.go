package scxrt

import "github.com/comalice/scxrt/internal/primitives"

// Public aliases over internal/primitives so callers never need to import
// an internal package directly to construct events, actor ids, or closed
// actions.
type (
	Event        = primitives.Event
	ActorID      = primitives.ActorID
	ActorRef     = primitives.ActorRef
	Observer     = primitives.Observer
	Unsubscribe  = primitives.Unsubscribe
	State        = primitives.State
	StateValue   = primitives.StateValue
	StateRecord  = primitives.Record
	Action       = primitives.Action
	Meta         = primitives.Meta
)

// InternalActorID is the reserved routing target meaning "self".
const InternalActorID = primitives.InternalActorID

// NewEvent constructs an Event with no payload.
func NewEvent(eventType string) Event { return primitives.NewEvent(eventType) }

// ToEvent normalizes the shorthand string-as-event-type form.
func ToEvent(v any) Event { return primitives.ToEvent(v) }
