package behavior

import (
	"context"

	"github.com/comalice/scxrt/internal/primitives"
)

// CallbackFunc is handed a receive channel of events sent to it (by parent
// or others addressing its ActorID) and a send function for delivering
// events back to its parent, with no built-in lifecycle beyond "runs
// until its context is done". ctx is cancelled when the actor is stopped.
type CallbackFunc func(ctx context.Context, bctx Context, receive <-chan primitives.Event, send func(primitives.Event))

// FromCallback wraps fn as a callback behavior.
func FromCallback(fn CallbackFunc) *Behavior {
	return &Behavior{kind: Callback, callbackFn: fn}
}
