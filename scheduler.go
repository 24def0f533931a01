package scouter

import "time"

// Timer is a pending AfterFunc registration.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the callback
	// already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler supplies the controller's notion of time and its one-shot callbacks.
//
// Now must be monotonic: it is only ever compared against earlier readings of itself.
// Callbacks registered with AfterFunc must run on the same goroutine that drives the
// controller; see realtime.Loop for a wall-clock implementation and testutil.SimScheduler
// for a simulated one.
type Scheduler interface {
	Now() time.Duration
	AfterFunc(d time.Duration, f func()) Timer
}
