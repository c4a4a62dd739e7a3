package scxrt

import (
	"github.com/comalice/scxrt/internal/actor"
	"github.com/comalice/scxrt/internal/clock"
	"github.com/comalice/scxrt/internal/metrics"
	"github.com/comalice/scxrt/internal/registry"
)

// Option configures an Interpreter, following a functional options pattern.
type Option = actor.Option

// Logger receives structured diagnostics from a running Interpreter.
type Logger = actor.Logger

// Clock abstracts delayed-send scheduling; RealClock drives wall-clock
// delays, SimulatedClock drives deterministic tests.
type Clock = clock.Clock

// NewDefaultLogger builds a production zap-backed Logger.
func NewDefaultLogger() Logger { return actor.NewDefaultLogger() }

// WithID overrides the interpreter's default actor id (the definition's
// id, or a random UUID when it has none).
func WithID(id ActorID) Option { return actor.WithID(id) }

// WithLogger overrides the default logger.
func WithLogger(l Logger) Option { return actor.WithLogger(l) }

// WithClock overrides the real-time clock used for delayed sends.
func WithClock(c Clock) Option { return actor.WithClock(c) }

// WithParent links this interpreter to a parent ActorRef.
func WithParent(ref ActorRef) Option { return actor.WithParent(ref) }

// WithDeferEvents controls whether Send before Start buffers the event
// (true, the default) or is reported as an error and dropped (false).
func WithDeferEvents(enabled bool) Option { return actor.WithDeferEvents(enabled) }

// WithDelayedSendRegistry overrides the registry backing delayed/cancellable
// sends, primarily useful in tests that want to assert on outstanding
// timers via registry.Outstanding().
func WithDelayedSendRegistry(r *registry.DelayedSendRegistry) Option {
	return actor.WithDelayedSendRegistry(r)
}

// WithMetrics wraps the interpreter's logger so every transition and action
// also updates collector's Prometheus series under machineID.
func WithMetrics(collector *metrics.Collector, machineID string) Option {
	return actor.WithMetrics(collector, machineID)
}

// NewSimulatedClock builds a deterministic clock for tests, advanced
// explicitly via its Advance method instead of real wall-clock time.
func NewSimulatedClock() *clock.SimulatedClock { return clock.NewSimulatedClock() }
