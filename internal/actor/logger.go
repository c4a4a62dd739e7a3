package actor

import (
	"go.uber.org/zap"

	"github.com/comalice/scxrt/internal/primitives"
)

// Logger receives structured diagnostics from an Interpreter: transitions,
// action execution, and child lifecycle events, backed by
// go.uber.org/zap's structured SugaredLogger so field values (event types,
// actor ids, durations) stay queryable instead of string-interpolated.
type Logger interface {
	Transition(actorID primitives.ActorID, from, to primitives.StateValue, event primitives.Event)
	Action(actorID primitives.ActorID, action primitives.Action, err error)
	Message(actorID primitives.ActorID, value any)
	Spawn(parent, child primitives.ActorID)
	Stop(actorID primitives.ActorID)
	// Error reports a non-fatal runtime problem not tied to one action
	// execution (e.g. a Send arriving before Start with deferEvents off).
	Error(actorID primitives.ActorID, err error)
	// ChildrenChanged reports the current live-child count after a spawn or
	// child stop.
	ChildrenChanged(actorID primitives.ActorID, count int)
	// DelayedPendingChanged reports the current outstanding-delayed-send
	// count after a register, cancel, or fire.
	DelayedPendingChanged(actorID primitives.ActorID, count int)
}

// zapLogger is the default Logger, backed by a zap.SugaredLogger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps an existing *zap.Logger. Pass zap.NewNop() in tests to
// silence output.
func NewZapLogger(l *zap.Logger) Logger {
	return &zapLogger{sugar: l.Sugar()}
}

// NewDefaultLogger builds a production zap.Logger with sane defaults; if
// construction fails (should not happen for the production config) it falls
// back to a no-op logger rather than panicking a caller who didn't opt in
// to a custom Logger.
func NewDefaultLogger() Logger {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	return NewZapLogger(l)
}

func (z *zapLogger) Transition(actorID primitives.ActorID, from, to primitives.StateValue, event primitives.Event) {
	z.sugar.Debugw("transition",
		"actor", string(actorID),
		"from", from.String(),
		"to", to.String(),
		"event", event.Type,
	)
}

func (z *zapLogger) Action(actorID primitives.ActorID, action primitives.Action, err error) {
	if err != nil {
		z.sugar.Warnw("action failed",
			"actor", string(actorID),
			"action", actionName(action),
			"error", err,
		)
		return
	}
	z.sugar.Debugw("action executed",
		"actor", string(actorID),
		"action", actionName(action),
	)
}

func (z *zapLogger) Message(actorID primitives.ActorID, value any) {
	z.sugar.Infow("log action", "actor", string(actorID), "value", value)
}

func (z *zapLogger) Spawn(parent, child primitives.ActorID) {
	z.sugar.Debugw("spawned child", "parent", string(parent), "child", string(child))
}

func (z *zapLogger) Stop(actorID primitives.ActorID) {
	z.sugar.Debugw("actor stopped", "actor", string(actorID))
}

func (z *zapLogger) Error(actorID primitives.ActorID, err error) {
	z.sugar.Errorw("interpreter error", "actor", string(actorID), "error", err)
}

func (z *zapLogger) ChildrenChanged(actorID primitives.ActorID, count int) {
	z.sugar.Debugw("active children changed", "actor", string(actorID), "count", count)
}

func (z *zapLogger) DelayedPendingChanged(actorID primitives.ActorID, count int) {
	z.sugar.Debugw("delayed sends pending changed", "actor", string(actorID), "count", count)
}

func actionName(a primitives.Action) string {
	switch a.(type) {
	case primitives.ActionSend:
		return "send"
	case primitives.ActionCancel:
		return "cancel"
	case primitives.ActionRaise:
		return "raise"
	case primitives.ActionLog:
		return "log"
	case primitives.ActionRespond:
		return "respond"
	case primitives.ActionSendParent:
		return "sendParent"
	case primitives.ActionStartChild:
		return "startChild"
	case primitives.ActionStopChild:
		return "stopChild"
	default:
		return "unknown"
	}
}

// noopLogger discards everything; used when New is given WithLogger(nil).
type noopLogger struct{}

func (noopLogger) Transition(primitives.ActorID, primitives.StateValue, primitives.StateValue, primitives.Event) {
}
func (noopLogger) Action(primitives.ActorID, primitives.Action, error) {}
func (noopLogger) Message(primitives.ActorID, any)                     {}
func (noopLogger) Spawn(primitives.ActorID, primitives.ActorID)        {}
func (noopLogger) Stop(primitives.ActorID)                             {}
func (noopLogger) Error(primitives.ActorID, error)                     {}
func (noopLogger) ChildrenChanged(primitives.ActorID, int)             {}
func (noopLogger) DelayedPendingChanged(primitives.ActorID, int)       {}
