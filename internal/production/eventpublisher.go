package production

import (
	"sync/atomic"

	"github.com/comalice/scouter"
)

// PublishedFrame is a rendered frame with its publish sequence number.
type PublishedFrame struct {
	Seq   uint64        `json:"seq"`
	Frame scouter.Frame `json:"frame"`
}

// FramePublisher is a scouter.RenderSink that forwards frames to a channel.
// Non-blocking publish with drop on backpressure, so a slow consumer never stalls a tick.
type FramePublisher struct {
	ch      chan<- PublishedFrame
	seq     uint64
	dropped atomic.Uint64
}

// NewFramePublisher creates a FramePublisher with the given output channel.
func NewFramePublisher(ch chan<- PublishedFrame) *FramePublisher {
	return &FramePublisher{ch: ch}
}

func (p *FramePublisher) Render(f scouter.Frame) {
	p.seq++
	select {
	case p.ch <- PublishedFrame{Seq: p.seq, Frame: f}:
	default:
		p.dropped.Add(1)
	}
}

// Dropped returns the number of frames lost to backpressure. Safe to call from any
// goroutine.
func (p *FramePublisher) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *FramePublisher) Close() error {
	close(p.ch)
	return nil
}
