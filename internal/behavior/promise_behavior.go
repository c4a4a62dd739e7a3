package behavior

import "context"

// PromiseFunc runs exactly once. Its ctx is cancelled if the owning actor
// is stopped before the promise settles. Resolution becomes a single
// onDone event delivered to the parent (resolve) or an error event
// (reject).
type PromiseFunc func(ctx context.Context, bctx Context) (any, error)

// FromPromise wraps fn as a promise behavior.
func FromPromise(fn PromiseFunc) *Behavior {
	return &Behavior{kind: Promise, promiseFn: fn}
}
