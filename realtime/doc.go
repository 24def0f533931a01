// Package realtime provides the wall-clock event loop a scouter.Controller runs on.
//
// A Loop owns one goroutine. Everything posted to it, and every timer it fires, runs
// on that goroutine in submission order, so a Controller driven only through the loop
// needs no locking:
//
//	loop := realtime.NewLoop(realtime.Config{Logger: logger})
//	if err := loop.Start(ctx); err != nil {
//		return err
//	}
//	defer loop.Stop()
//
//	var ctl *scouter.Controller
//	err := loop.Do(ctx, func() {
//		ctl, err = scouter.New(loop, sink, shutdown)
//	})
//
// Host callbacks that arrive on other goroutines (HTTP handlers, websocket readers,
// signal handlers) must be marshalled with Post or Do before they touch the controller.
//
// # Timers
//
// AfterFunc arms a time.Timer whose expiry posts the callback onto the loop. Whether
// the callback runs or the timer is stopped is decided on the loop with a single
// compare-and-swap, so a Stop that returns true on the loop guarantees the callback is
// never observed, even when the timer had already expired and its callback was queued.
//
// # Ordering
//
// Callbacks are sequence-numbered when posted and run strictly in that order. A batch
// is collected atomically, so callbacks posted while a batch runs go to the next one.
//
// # Panics
//
// A panicking callback is recovered and logged; the loop keeps running.
package realtime
