package primitives

// Observer receives state notifications and lifecycle signals from an
// ActorRef's Subscribe. Error and Complete are optional;
// a nil field is simply not invoked.
type Observer struct {
	Next     func(State)
	Error    func(error)
	Complete func()
}

// Unsubscribe detaches a previously registered Observer. Idempotent.
type Unsubscribe func()

// ActorRef is the capability surface every actor exposes to the outside
// world, regardless of whether it wraps a machine, a promise, an
// observable, or a callback. Holders other than the owning
// parent must assume the actor may be stopped out from under them.
type ActorRef interface {
	ID() ActorID
	Send(Event)
	Subscribe(Observer) Unsubscribe
	Stop()
}
