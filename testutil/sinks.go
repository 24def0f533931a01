package testutil

import (
	"time"

	"github.com/comalice/scouter"
)

// Clock is the part of a scheduler the recorders read timestamps from.
type Clock interface {
	Now() time.Duration
}

// RenderRecorder is a scouter.RenderSink that keeps every frame.
type RenderRecorder struct {
	clock  Clock
	Frames []scouter.Frame
	At     []time.Duration
}

// NewRenderRecorder records frames, stamping them with clock if it is non-nil.
func NewRenderRecorder(clock Clock) *RenderRecorder {
	return &RenderRecorder{clock: clock}
}

func (r *RenderRecorder) Render(f scouter.Frame) {
	r.Frames = append(r.Frames, f)
	if r.clock != nil {
		r.At = append(r.At, r.clock.Now())
	}
}

// Count returns the number of frames rendered.
func (r *RenderRecorder) Count() int {
	return len(r.Frames)
}

// Last returns the most recent frame, or the zero Frame.
func (r *RenderRecorder) Last() scouter.Frame {
	if len(r.Frames) == 0 {
		return scouter.Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}

// ShutdownCounter is a scouter.ShutdownSink that counts requests.
type ShutdownCounter struct {
	clock Clock
	Calls int
	At    []time.Duration
}

// NewShutdownCounter counts shutdowns, stamping them with clock if it is non-nil.
func NewShutdownCounter(clock Clock) *ShutdownCounter {
	return &ShutdownCounter{clock: clock}
}

func (s *ShutdownCounter) Shutdown() {
	s.Calls++
	if s.clock != nil {
		s.At = append(s.At, s.clock.Now())
	}
}

// ListenerCounter is a scouter.ChangeListener that counts notifications.
type ListenerCounter struct {
	Calls int
}

func (l *ListenerCounter) OnChange() {
	l.Calls++
}
