package benchmarks

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/comalice/scouter"
	"github.com/comalice/scouter/realtime"
)

// Loop benchmarks run on the wall clock. They measure the cost of marshalling work
// onto the loop goroutine, not tick cadence.

func startLoop(b *testing.B, cfg realtime.Config) *realtime.Loop {
	b.Helper()
	l := realtime.NewLoop(cfg)
	if err := l.Start(context.Background()); err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { l.Stop() })
	return l
}

// BenchmarkLoopPost measures throughput of queued callbacks.
func BenchmarkLoopPost(b *testing.B) {
	l := startLoop(b, realtime.Config{MaxQueue: 1 << 20})

	var ran atomic.Int64
	fn := func() { ran.Add(1) }

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for l.Post(fn) != nil {
			// queue full; let the loop drain
			time.Sleep(time.Microsecond)
		}
	}
	if err := l.Do(context.Background(), func() {}); err != nil {
		b.Fatal(err)
	}
	b.StopTimer()

	if ran.Load() != int64(b.N) {
		b.Fatalf("expected %d callbacks, ran %d", b.N, ran.Load())
	}
}

// BenchmarkLoopDo measures round-trip latency of a synchronous call.
func BenchmarkLoopDo(b *testing.B) {
	l := startLoop(b, realtime.Config{})
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := l.Do(ctx, func() {}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLoopControl measures a host control call: a mutator plus a snapshot.
func BenchmarkLoopControl(b *testing.B) {
	l := startLoop(b, realtime.Config{})
	ctx := context.Background()

	var c *scouter.Controller
	err := l.Do(ctx, func() {
		var err error
		c, err = scouter.New(l, discard{}, discard{}, scouter.WithSessionIDs(seqIDs()))
		if err == nil {
			c.Start()
		}
	})
	if err != nil || c == nil {
		b.Fatalf("setup failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		visible := i%2 == 0
		if err := l.Do(ctx, func() {
			c.OnHostVisibilityChanged(visible)
			_ = c.Snapshot()
		}); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()

	l.Do(ctx, c.OnHostDetached)
}

// BenchmarkLoopTimerStop measures arming and cancelling a loop timer.
func BenchmarkLoopTimerStop(b *testing.B) {
	l := startLoop(b, realtime.Config{})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t := l.AfterFunc(time.Hour, func() {})
		t.Stop()
	}
}
