package realtime

import (
	"sync/atomic"
	"time"

	"github.com/comalice/scouter"
)

const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

type loopTimer struct {
	t     *time.Timer // nil for zero-delay timers, which are posted directly
	state atomic.Int32
}

// AfterFunc runs f on the loop once d has elapsed. A non-positive d posts f
// immediately.
func (l *Loop) AfterFunc(d time.Duration, f func()) scouter.Timer {
	lt := &loopTimer{}
	fire := func() {
		if !lt.state.CompareAndSwap(timerPending, timerFired) {
			return
		}
		f()
	}
	post := func() {
		if err := l.Post(fire); err != nil {
			l.logger.Warn("timer fire dropped", "error", err)
		}
	}

	if d <= 0 {
		post()
		return lt
	}
	lt.t = time.AfterFunc(d, post)
	return lt
}

func (lt *loopTimer) Stop() bool {
	if lt.t != nil {
		lt.t.Stop()
	}
	return lt.state.CompareAndSwap(timerPending, timerStopped)
}
