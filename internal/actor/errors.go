package actor

import (
	"fmt"

	"github.com/comalice/scxrt/internal/primitives"
)

// UninitializedSendError is reported (never returned — Send has no error
// return per the ActorRef contract) when an event is sent to an interpreter
// that has not yet Start()ed and was configured with WithDeferEvents(false).
type UninitializedSendError struct {
	ActorID primitives.ActorID
	Event   primitives.Event
}

func (e *UninitializedSendError) Error() string {
	return fmt.Sprintf("scxrt: send %q to actor %q before start (deferEvents disabled)", e.Event.Type, e.ActorID)
}

// InvalidInitialStateError wraps a MachineDefinition construction failure,
// surfaced at machine construction time in this implementation rather than
// deferred to the first Start call.
type InvalidInitialStateError struct {
	MachineID string
	Err       error
}

func (e *InvalidInitialStateError) Error() string {
	return fmt.Sprintf("scxrt: machine %q has an invalid initial state: %v", e.MachineID, e.Err)
}

func (e *InvalidInitialStateError) Unwrap() error { return e.Err }
