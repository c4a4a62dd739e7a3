// Package scxrt is a statechart interpreter: a runtime for hierarchical,
// parallel finite-state machines with internal event queues,
// delayed/cancellable sends, transient (eventless) transitions, guarded
// transitions, context-assigning actions, and a tree of spawned/invoked
// child actors.
//
// A machine is described declaratively with NewMachine's builder, then
// handed to Interpret to get a running Interpreter:
//
//	cfg, _ := scxrt.NewMachine("trafficLight").
//		Initial("red").
//		State("red").On("TIMER", "green").End().
//		State("green").On("TIMER", "yellow").End().
//		State("yellow").On("TIMER", "red").End().
//		Build()
//	def, _ := scxrt.NewDefinition(cfg)
//	in := scxrt.Interpret(def)
//	in.Start()
//	in.Send(scxrt.NewEvent("TIMER"))
//
// The interpreter itself never inspects a machine's Context or state
// shape; it only drives the actions a MachineDefinition's pure transition
// function returns, keeping machine description and execution cleanly
// separated.
package scxrt
