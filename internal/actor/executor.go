package actor

import (
	"github.com/comalice/scxrt/internal/behavior"
	"github.com/comalice/scxrt/internal/primitives"
)

// runActions executes actions in order against causingEvent. It is the
// single place every ActorRef-facing side effect (send, cancel, raise, log,
// respond, sendParent, startChild, stopChild) originates, dispatching on
// the closed primitives.Action variant set via a type switch.
func (in *Interpreter) runActions(actions []primitives.Action, causingEvent primitives.Event) {
	meta := primitives.Meta{CausingEvent: causingEvent}
	for _, action := range actions {
		err := in.runOne(action, causingEvent, meta)
		in.logger.Action(in.id, action, err)
		if err != nil {
			in.subs.Error(err)
		}
	}
}

func (in *Interpreter) runOne(action primitives.Action, event primitives.Event, meta primitives.Meta) error {
	ctx := in.Snapshot().Context
	switch a := action.(type) {
	case primitives.ActionSend:
		return in.execSend(a, ctx, event, meta)
	case primitives.ActionCancel:
		id := a.ID.Resolve(ctx, event, meta)
		in.delayed.Cancel(id)
		in.logger.DelayedPendingChanged(in.id, in.delayed.Outstanding())
		return nil
	case primitives.ActionRaise:
		in.raise(a.Event.Resolve(ctx, event, meta))
		return nil
	case primitives.ActionLog:
		if a.Expr != nil {
			in.logger.Message(in.id, a.Expr(ctx, event, meta))
		} else {
			in.logger.Message(in.id, a.Message)
		}
		return nil
	case primitives.ActionRespond:
		resolved := a.Event.Resolve(ctx, event, meta)
		return in.deliverTo(event.Origin, resolved)
	case primitives.ActionSendParent:
		if in.parent == nil {
			return nil
		}
		in.parent.Send(a.Event.Resolve(ctx, event, meta))
		return nil
	case primitives.ActionStartChild:
		return in.startChild(a)
	case primitives.ActionStopChild:
		id := a.Ref.Resolve(ctx, event, meta)
		in.children.Stop(id)
		in.mu.Lock()
		delete(in.state.Children, id)
		in.mu.Unlock()
		in.logger.ChildrenChanged(in.id, in.children.Len())
		return nil
	default:
		return nil
	}
}

func (in *Interpreter) execSend(a primitives.ActionSend, ctx any, event primitives.Event, meta primitives.Meta) error {
	resolved := a.Event.Resolve(ctx, event, meta)
	target := a.To.Resolve(ctx, event, meta)

	if !a.Delay.HasDelay {
		return in.deliverTo(target, resolved)
	}

	delay := a.Delay.Resolve(ctx, event, meta)
	id := a.ID.Resolve(ctx, event, meta)
	if id == "" {
		id = resolved.Type
	}
	handle := in.clk.SetTimeout(func() {
		in.delayed.Forget(id)
		in.logger.DelayedPendingChanged(in.id, in.delayed.Outstanding())
		_ = in.deliverTo(target, resolved)
	}, delay.Milliseconds())
	in.delayed.Register(id, handle)
	in.logger.DelayedPendingChanged(in.id, in.delayed.Outstanding())
	return nil
}

// deliverTo routes an event to target: the interpreter itself for "" or
// primitives.InternalActorID, a live child, or is silently dropped if
// target names neither — sending to an unknown actor id is a no-op, not an
// error.
func (in *Interpreter) deliverTo(target primitives.ActorID, event primitives.Event) error {
	if target == "" || target == primitives.InternalActorID {
		in.Send(event.WithOrigin(in.id))
		return nil
	}
	if ref, ok := in.children.Get(target); ok {
		ref.Send(event.WithOrigin(in.id))
		return nil
	}
	return nil
}

func (in *Interpreter) startChild(a primitives.ActionStartChild) error {
	b, ok := a.Behavior.(*behavior.Behavior)
	if !ok || b == nil {
		return nil
	}
	ref := in.spawn(a.ID, b)
	in.children.Add(a.ID, ref)
	in.logger.Spawn(in.id, a.ID)
	in.logger.ChildrenChanged(in.id, in.children.Len())

	in.mu.Lock()
	if in.state.Children == nil {
		in.state.Children = map[primitives.ActorID]primitives.ActorRef{}
	}
	in.state.Children[a.ID] = ref
	in.mu.Unlock()
	return nil
}
