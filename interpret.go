package scxrt

import "github.com/comalice/scxrt/internal/actor"

// MachineDefinition is the pure contract a machine description must
// satisfy: InitialState and Transition never mutate shared state, perform
// I/O, or spawn actors. *machinedef.Definition implements this.
type MachineDefinition = actor.MachineDefinition

// Interpreter is a single running statechart actor.
type Interpreter = actor.Interpreter

// Interpret constructs an Interpreter around def without starting it —
// call Start or StartFrom to enter the running state.
func Interpret(def MachineDefinition, opts ...Option) *Interpreter {
	return actor.New(def, opts...)
}
