package scxrt

import "github.com/comalice/scxrt/internal/actor"

// UninitializedSendError is reported to the configured Logger's Error
// method when an event is sent before Start/StartFrom and the interpreter
// was built with WithDeferEvents(false).
type UninitializedSendError = actor.UninitializedSendError

// InvalidInitialStateError wraps a MachineDefinition construction failure.
type InvalidInitialStateError = actor.InvalidInitialStateError
