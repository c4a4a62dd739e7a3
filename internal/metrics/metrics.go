// Package metrics exposes optional Prometheus instrumentation for the
// interpreter: transition counts, action execution outcomes, active child
// counts, and outstanding delayed sends. It does not import internal/actor;
// internal/actor's WithMetrics option wraps the interpreter's Logger in an
// adapter that forwards into a *Collector, a "pluggable component, nil by
// default" shape shared with the interpreter's other optional collaborators.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector holds the machine-level Prometheus metrics an interpreter can
// report into. A nil *Collector is valid and every method is then a no-op,
// so WithMetrics is purely additive for callers who don't register a
// registry.
type Collector struct {
	transitions     *prometheus.CounterVec
	actionErrors    *prometheus.CounterVec
	actionsExecuted *prometheus.CounterVec
	activeChildren  *prometheus.GaugeVec
	delayedPending  *prometheus.GaugeVec
}

// NewCollector builds a Collector and registers its metrics with reg. Pass
// prometheus.NewRegistry() for an isolated test registry, or
// prometheus.DefaultRegisterer for production use.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scxrt_transitions_total",
			Help: "Total number of committed microstep transitions, labeled by machine id.",
		}, []string{"machine"}),
		actionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scxrt_action_errors_total",
			Help: "Total number of action executions that returned an error, labeled by machine id and action kind.",
		}, []string{"machine", "action"}),
		actionsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scxrt_actions_executed_total",
			Help: "Total number of actions executed, labeled by machine id and action kind.",
		}, []string{"machine", "action"}),
		activeChildren: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scxrt_active_children",
			Help: "Current number of live child actors, labeled by machine id.",
		}, []string{"machine"}),
		delayedPending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scxrt_delayed_sends_pending",
			Help: "Current number of outstanding delayed sends, labeled by machine id.",
		}, []string{"machine"}),
	}
	reg.MustRegister(c.transitions, c.actionErrors, c.actionsExecuted, c.activeChildren, c.delayedPending)
	return c
}

// ObserveTransition records one committed transition for machineID.
func (c *Collector) ObserveTransition(machineID string) {
	if c == nil {
		return
	}
	c.transitions.WithLabelValues(machineID).Inc()
}

// ObserveAction records one action execution, incrementing the error
// counter too when err is non-nil.
func (c *Collector) ObserveAction(machineID, actionKind string, err error) {
	if c == nil {
		return
	}
	c.actionsExecuted.WithLabelValues(machineID, actionKind).Inc()
	if err != nil {
		c.actionErrors.WithLabelValues(machineID, actionKind).Inc()
	}
}

// SetActiveChildren records the current child count for machineID.
func (c *Collector) SetActiveChildren(machineID string, n int) {
	if c == nil {
		return
	}
	c.activeChildren.WithLabelValues(machineID).Set(float64(n))
}

// SetDelayedPending records the current outstanding-delayed-send count for
// machineID.
func (c *Collector) SetDelayedPending(machineID string, n int) {
	if c == nil {
		return
	}
	c.delayedPending.WithLabelValues(machineID).Set(float64(n))
}
