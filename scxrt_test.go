package scxrt_test

import (
	"testing"

	"github.com/comalice/scxrt"
)

func trafficLightDef(t *testing.T) scxrt.MachineDefinition {
	t.Helper()
	cfg, err := scxrt.NewMachine("trafficLight").
		Initial("red").
		State("red").On("TIMER", "green").End().
		State("green").On("TIMER", "yellow").End().
		State("yellow").On("TIMER", "red").End().
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	def, err := scxrt.NewDefinition(cfg)
	if err != nil {
		t.Fatalf("scxrt.NewDefinition: %v", err)
	}
	return def
}

func TestInterpretStartReturnsInitialState(t *testing.T) {
	in := scxrt.Interpret(trafficLightDef(t))
	state := in.Start()
	defer in.Stop()

	if got := state.Value.String(); got != "red" {
		t.Fatalf("initial state = %q, want %q", got, "red")
	}
}

func TestInterpretSendDrivesTransition(t *testing.T) {
	in := scxrt.Interpret(trafficLightDef(t))
	in.Start()
	defer in.Stop()

	in.Send(scxrt.NewEvent("TIMER"))

	if got := in.Snapshot().Value.String(); got != "green" {
		t.Fatalf("after TIMER, state = %q, want %q", got, "green")
	}
}

func TestInterpretSubscribeReplaysLatestState(t *testing.T) {
	in := scxrt.Interpret(trafficLightDef(t))
	in.Start()
	defer in.Stop()

	var observed []string
	in.Subscribe(scxrt.Observer{
		Next: func(s scxrt.State) { observed = append(observed, s.Value.String()) },
	})

	if len(observed) != 1 || observed[0] != "red" {
		t.Fatalf("Subscribe did not replay current state, got %v", observed)
	}

	in.Send(scxrt.NewEvent("TIMER"))
	if len(observed) != 2 || observed[1] != "green" {
		t.Fatalf("expected subscriber to observe the TIMER transition, got %v", observed)
	}
}

func TestInterpretStopCompletesSubscribersExactlyOnce(t *testing.T) {
	in := scxrt.Interpret(trafficLightDef(t))
	in.Start()

	completions := 0
	in.Subscribe(scxrt.Observer{
		Complete: func() { completions++ },
	})

	in.Stop()
	in.Stop() // idempotent

	if completions != 1 {
		t.Fatalf("Complete called %d times, want exactly 1", completions)
	}
}

func TestWithDeferEventsFalseReportsUninitializedSend(t *testing.T) {
	var reported error
	logger := fakeErrorLogger{onError: func(err error) { reported = err }}

	in := scxrt.Interpret(trafficLightDef(t),
		scxrt.WithLogger(logger),
		scxrt.WithDeferEvents(false),
	)
	in.Send(scxrt.NewEvent("TIMER"))

	if reported == nil {
		t.Fatal("expected an UninitializedSendError to be reported")
	}
	if _, ok := reported.(*scxrt.UninitializedSendError); !ok {
		t.Fatalf("reported error is %T, want *scxrt.UninitializedSendError", reported)
	}
}

type fakeErrorLogger struct {
	onError func(error)
}

func (fakeErrorLogger) Transition(scxrt.ActorID, scxrt.StateValue, scxrt.StateValue, scxrt.Event) {}
func (fakeErrorLogger) Action(scxrt.ActorID, scxrt.Action, error)                                 {}
func (fakeErrorLogger) Message(scxrt.ActorID, any)                                                {}
func (fakeErrorLogger) Spawn(scxrt.ActorID, scxrt.ActorID)                                         {}
func (fakeErrorLogger) Stop(scxrt.ActorID)                                                         {}
func (f fakeErrorLogger) Error(id scxrt.ActorID, err error)                                        { f.onError(err) }
func (fakeErrorLogger) ChildrenChanged(scxrt.ActorID, int)                                         {}
func (fakeErrorLogger) DelayedPendingChanged(scxrt.ActorID, int)                                   {}
