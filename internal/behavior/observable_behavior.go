package behavior

import "context"

// ObservableFunc emits zero or more values via next, may fail via errFn, and
// signals completion via complete. The interpreter forwards each next,
// errFn and complete call as an event to the owning parent. ctx is
// cancelled when the actor is stopped, at which point the function must
// return.
type ObservableFunc func(ctx context.Context, bctx Context, next func(any), errFn func(error), complete func())

// FromObservable wraps fn as an observable behavior.
func FromObservable(fn ObservableFunc) *Behavior {
	return &Behavior{kind: Observable, observeFn: fn}
}
