// Package testutil provides a simulated scheduler and recording sinks so controller
// behavior can be driven tick by tick without sleeping.
package testutil

import (
	"time"

	"github.com/comalice/scouter"
)

// SimScheduler is a manual clock implementing scouter.Scheduler. Time only moves when
// Advance is called; due callbacks run synchronously inside Advance, on the caller's
// goroutine, in (due time, registration order) order.
//
// SimScheduler is not safe for concurrent use.
type SimScheduler struct {
	now     time.Duration
	seq     uint64
	pending []*simTimer
	fired   uint64
}

type simTimer struct {
	s    *SimScheduler
	at   time.Duration
	seq  uint64
	f    func()
	done bool
}

// NewSimScheduler returns a scheduler whose clock reads start.
func NewSimScheduler(start time.Duration) *SimScheduler {
	return &SimScheduler{now: start}
}

// Now returns the simulated time.
func (s *SimScheduler) Now() time.Duration {
	return s.now
}

// AfterFunc registers f to run once the clock reaches Now()+d. A negative d is zero.
func (s *SimScheduler) AfterFunc(d time.Duration, f func()) scouter.Timer {
	if d < 0 {
		d = 0
	}
	t := &simTimer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.seq++
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock forward by d, running every callback that falls due,
// including callbacks registered by callbacks. The clock reads each callback's due
// time while it runs. It returns the number of callbacks run.
func (s *SimScheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	return s.AdvanceTo(s.now + d)
}

// AdvanceTo moves the clock to at (never backwards) running due callbacks.
func (s *SimScheduler) AdvanceTo(at time.Duration) int {
	if at < s.now {
		at = s.now
	}
	n := 0
	for {
		t := s.next(at)
		if t == nil {
			break
		}
		s.remove(t)
		t.done = true
		if t.at > s.now {
			s.now = t.at
		}
		s.fired++
		n++
		t.f()
	}
	s.now = at
	return n
}

// Flush runs callbacks due at the current time.
func (s *SimScheduler) Flush() int {
	return s.Advance(0)
}

// Pending returns the number of registered callbacks not yet run or stopped.
func (s *SimScheduler) Pending() int {
	return len(s.pending)
}

// NextAt reports when the earliest pending callback falls due.
func (s *SimScheduler) NextAt() (time.Duration, bool) {
	t := s.next(1<<63 - 1)
	if t == nil {
		return 0, false
	}
	return t.at, true
}

// Fired returns the total number of callbacks run.
func (s *SimScheduler) Fired() uint64 {
	return s.fired
}

func (s *SimScheduler) next(limit time.Duration) *simTimer {
	var best *simTimer
	for _, t := range s.pending {
		if t.at > limit {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *SimScheduler) remove(t *simTimer) {
	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

func (t *simTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.s.remove(t)
	return true
}
