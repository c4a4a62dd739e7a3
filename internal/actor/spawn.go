package actor

import (
	"context"

	"github.com/comalice/scxrt/internal/behavior"
	"github.com/comalice/scxrt/internal/primitives"
)

// spawn instantiates b under id, wiring its lifecycle: a MachineBehavior
// gets a full nested Interpreter; Promise/Observable/Callback get a
// lightweight childHandle whose only job is to carry a cancellation signal
// and, for Callback, a delivery channel.
func (in *Interpreter) spawn(id primitives.ActorID, b *behavior.Behavior) primitives.ActorRef {
	switch b.Kind() {
	case behavior.Machine:
		return in.spawnMachine(id, b)
	case behavior.Promise:
		return in.spawnPromise(id, b)
	case behavior.Observable:
		return in.spawnObservable(id, b)
	case behavior.Callback:
		return in.spawnCallback(id, b)
	default:
		return &childHandle{id: id}
	}
}

// childHandle is the ActorRef for the three non-machine behaviors: none of
// them have a transition function or observable state snapshot of their
// own, only a cancellation signal and (for callback) an inbox.
type childHandle struct {
	id     primitives.ActorID
	cancel context.CancelFunc
	inbox  chan primitives.Event
}

func (c *childHandle) ID() primitives.ActorID { return c.id }

func (c *childHandle) Send(event primitives.Event) {
	if c.inbox == nil {
		return
	}
	select {
	case c.inbox <- event:
	default:
	}
}

// Subscribe is a no-op for behaviors with no internal state snapshot to
// replay; Promise/Observable/Callback only need Send/Stop to be
// meaningful.
func (c *childHandle) Subscribe(primitives.Observer) primitives.Unsubscribe { return func() {} }

func (c *childHandle) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (in *Interpreter) spawnMachine(id primitives.ActorID, b *behavior.Behavior) primitives.ActorRef {
	child := New(b.MachineDef(), WithID(id), withParentRef(in), WithLogger(in.logger), WithClock(in.clk))
	child.Subscribe(primitives.Observer{
		Next: func(s primitives.State) {
			if s.Done {
				in.Send(primitives.NewEvent("done.invoke." + string(id)).WithData(s.Context).WithOrigin(id))
			}
		},
	})
	child.Start()
	return child
}

func (in *Interpreter) spawnPromise(id primitives.ActorID, b *behavior.Behavior) primitives.ActorRef {
	ctx, cancel := context.WithCancel(context.Background())
	h := &childHandle{id: id, cancel: cancel}
	bctx := behavior.Context{Self: h, Parent: in}
	go func() {
		value, err := b.PromiseFunc()(ctx, bctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			in.Send(primitives.NewEvent("error.platform." + string(id)).WithData(err).WithOrigin(id))
			return
		}
		in.Send(primitives.NewEvent("done.invoke." + string(id)).WithData(value).WithOrigin(id))
	}()
	return h
}

func (in *Interpreter) spawnObservable(id primitives.ActorID, b *behavior.Behavior) primitives.ActorRef {
	ctx, cancel := context.WithCancel(context.Background())
	h := &childHandle{id: id, cancel: cancel}
	bctx := behavior.Context{Self: h, Parent: in}
	go b.ObservableFunc()(ctx, bctx,
		func(v any) {
			if ctx.Err() != nil {
				return
			}
			in.Send(primitives.ToEvent(v).WithOrigin(id))
		},
		func(err error) {
			if ctx.Err() != nil {
				return
			}
			in.Send(primitives.NewEvent("error.platform." + string(id)).WithData(err).WithOrigin(id))
		},
		func() {
			if ctx.Err() != nil {
				return
			}
			in.Send(primitives.NewEvent("done.invoke." + string(id)).WithOrigin(id))
		},
	)
	return h
}

func (in *Interpreter) spawnCallback(id primitives.ActorID, b *behavior.Behavior) primitives.ActorRef {
	ctx, cancel := context.WithCancel(context.Background())
	inbox := make(chan primitives.Event, 16)
	h := &childHandle{id: id, cancel: cancel, inbox: inbox}
	bctx := behavior.Context{Self: h, Parent: in}
	go b.CallbackFunc()(ctx, bctx, inbox, func(event primitives.Event) {
		if ctx.Err() != nil {
			return
		}
		in.Send(event.WithOrigin(id))
	})
	return h
}
