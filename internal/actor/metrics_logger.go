package actor

import (
	"github.com/comalice/scxrt/internal/metrics"
	"github.com/comalice/scxrt/internal/primitives"
)

// metricsLogger decorates a Logger with Prometheus observations: wrap an
// inner implementation of the same interface, add a side effect, delegate.
type metricsLogger struct {
	inner     Logger
	collector *metrics.Collector
	machineID string
}

// WithMetrics wraps the interpreter's logger so every transition and action
// also updates collector's Prometheus series under machineID. Pass the
// interpreter's own eventual ID as machineID, or a caller-chosen label.
func WithMetrics(collector *metrics.Collector, machineID string) Option {
	return func(in *Interpreter) {
		if collector == nil {
			return
		}
		in.logger = &metricsLogger{inner: in.logger, collector: collector, machineID: machineID}
	}
}

func (m *metricsLogger) Transition(actorID primitives.ActorID, from, to primitives.StateValue, event primitives.Event) {
	m.collector.ObserveTransition(m.machineID)
	m.inner.Transition(actorID, from, to, event)
}

func (m *metricsLogger) Action(actorID primitives.ActorID, action primitives.Action, err error) {
	m.collector.ObserveAction(m.machineID, actionName(action), err)
	m.inner.Action(actorID, action, err)
}

func (m *metricsLogger) Message(actorID primitives.ActorID, value any) {
	m.inner.Message(actorID, value)
}

func (m *metricsLogger) Spawn(parent, child primitives.ActorID) {
	m.inner.Spawn(parent, child)
}

func (m *metricsLogger) Stop(actorID primitives.ActorID) {
	m.inner.Stop(actorID)
}

func (m *metricsLogger) Error(actorID primitives.ActorID, err error) {
	m.inner.Error(actorID, err)
}

func (m *metricsLogger) ChildrenChanged(actorID primitives.ActorID, count int) {
	m.collector.SetActiveChildren(m.machineID, count)
	m.inner.ChildrenChanged(actorID, count)
}

func (m *metricsLogger) DelayedPendingChanged(actorID primitives.ActorID, count int) {
	m.collector.SetDelayedPending(m.machineID, count)
	m.inner.DelayedPendingChanged(actorID, count)
}
