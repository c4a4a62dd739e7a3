package clock

import "time"

// RealClock is the default Clock, backed by the Go runtime timer wheel via
// time.AfterFunc.
type RealClock struct{}

// NewRealClock constructs the default real-time Clock.
func NewRealClock() *RealClock { return &RealClock{} }

// SetTimeout schedules fn to run after ms milliseconds on its own goroutine.
func (RealClock) SetTimeout(fn func(), ms int64) Handle {
	return time.AfterFunc(time.Duration(ms)*time.Millisecond, fn)
}

// ClearTimeout cancels a previously scheduled callback. Safe to call after
// the callback has already fired.
func (RealClock) ClearTimeout(h Handle) {
	if t, ok := h.(*time.Timer); ok {
		t.Stop()
	}
}
