package behavior

import "github.com/comalice/scxrt/internal/machinedef"

// FromMachine wraps a machine definition as a spawnable/invokable child
// actor behavior. The child gets its
// own full interpreter, event queue, and flush loop when started — it is
// not merely a nested transition table.
func FromMachine(def *machinedef.Definition) *Behavior {
	return &Behavior{kind: Machine, machineDef: def}
}
