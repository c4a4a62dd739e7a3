// Package behavior defines the closed set of actor behaviors a statechart
// can spawn or invoke: machine, promise, observable, and callback. A
// Behavior is a description, not a running actor — internal/actor turns
// one into a live primitives.ActorRef when an ActionStartChild or invoke
// is executed, the same separation machinedef.Config draws between a
// machine's description and its running interpreter.
package behavior

import (
	"github.com/comalice/scxrt/internal/machinedef"
	"github.com/comalice/scxrt/internal/primitives"
)

// Kind identifies which of the four closed behavior variants a Behavior
// holds, mirroring the closed-union design primitives.Action and
// primitives.StateValue already use.
type Kind int

const (
	Machine Kind = iota
	Promise
	Observable
	Callback
)

func (k Kind) String() string {
	switch k {
	case Machine:
		return "machine"
	case Promise:
		return "promise"
	case Observable:
		return "observable"
	case Callback:
		return "callback"
	default:
		return "unknown"
	}
}

// Context is passed to every non-Machine behavior function, giving it just
// enough capability to address itself and its parent without exposing the
// full interpreter.
type Context struct {
	Self   primitives.ActorRef
	Parent primitives.ActorRef
}

// Behavior is the closed variant set; exactly one of the kind-specific
// fields is populated, selected by Kind. Fields are unexported so the only
// way to build one is through the From* factories, which keeps the set
// closed the way primitives.Action's isAction() marker does.
type Behavior struct {
	kind       Kind
	machineDef *machinedef.Definition
	promiseFn  PromiseFunc
	observeFn  ObservableFunc
	callbackFn CallbackFunc
}

// Kind reports which variant this Behavior holds.
func (b *Behavior) Kind() Kind { return b.kind }

// MachineDef returns the wrapped machine definition. Only valid when
// Kind() == Machine.
func (b *Behavior) MachineDef() *machinedef.Definition { return b.machineDef }

// PromiseFunc returns the wrapped promise function. Only valid when
// Kind() == Promise.
func (b *Behavior) PromiseFunc() PromiseFunc { return b.promiseFn }

// ObservableFunc returns the wrapped observable function. Only valid when
// Kind() == Observable.
func (b *Behavior) ObservableFunc() ObservableFunc { return b.observeFn }

// CallbackFunc returns the wrapped callback function. Only valid when
// Kind() == Callback.
func (b *Behavior) CallbackFunc() CallbackFunc { return b.callbackFn }
