// Package scouter provides a self-driving display-update controller.
//
// A Controller ticks while three conditions agree: it has been started, and the host
// surface is either visible or force-start is set. While ticking it renders a fixed
// frame at a fixed cadence and measures the time elapsed since its base. When that
// time crosses the shutdown threshold the controller asks its host to shut down, once
// per crossing. Elapsed time is never rendered.
//
// # Example Usage
//
//	loop := realtime.NewLoop(realtime.Config{})
//	_ = loop.Start(ctx)
//	defer loop.Stop()
//
//	_ = loop.Do(ctx, func() {
//		ctl, _ = scouter.New(loop, sink, scouter.ShutdownFunc(cancel),
//			scouter.WithLogger(logger),
//		)
//		ctl.Start()
//		ctl.OnHostVisibilityChanged(true)
//	})
//
// # Run chart
//
// The run condition is evaluated by a two-state chart:
//
//	idle    --reconcile [(visible || forceStart) && started]-->  ticking
//	ticking --reconcile [!((visible || forceStart) && started)]--> idle
//
// Entering ticking schedules the first fire with zero delay; leaving it cancels the
// pending timer and invalidates the task, so no fire is observed afterwards. Calls that
// leave the condition unchanged take no transition and do not disturb the schedule.
//
// # Threading
//
// A Controller is single-threaded. Every method and every Scheduler callback must run
// on the same goroutine; realtime.Loop provides such a goroutine and lets hosts marshal
// their callbacks onto it.
//
// # Elapsed time
//
// Elapsed time is now-base in whole milliseconds, folded modulo one hour and then
// modulo one minute. The hour fold is redundant with the minute fold and is kept. As a
// consequence the shutdown gate re-arms every minute of a long session.
package scouter
