package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrAlreadyStarted = errors.New("loop already started")
	ErrClosed         = errors.New("loop closed")
	ErrQueueFull      = errors.New("loop queue full")
)

// Config configures a Loop.
type Config struct {
	MaxQueue int          // Pending callback capacity (default: 1024)
	Logger   *slog.Logger // Default discards
}

// Loop is a single-goroutine executor with a monotonic clock. It implements
// scouter.Scheduler.
type Loop struct {
	logger *slog.Logger
	origin time.Time

	// Batching
	batchMu  sync.Mutex
	batch    []queued
	seq      uint64
	maxQueue int
	closed   bool
	wake     chan struct{}

	processed atomic.Uint64

	// Control
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewLoop creates a loop. Nothing runs until Start.
func NewLoop(cfg Config) *Loop {
	if cfg.MaxQueue <= 0 {
		cfg.MaxQueue = 1024
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{
		logger:   cfg.Logger,
		origin:   time.Now(),
		batch:    make([]queued, 0, cfg.MaxQueue),
		maxQueue: cfg.MaxQueue,
		wake:     make(chan struct{}, 1),
		stopped:  make(chan struct{}),
	}
}

// Start launches the loop goroutine. It runs until ctx is done or Stop is called.
// Callbacks posted before Start run once it begins.
func (l *Loop) Start(ctx context.Context) error {
	l.batchMu.Lock()
	defer l.batchMu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if l.started {
		return ErrAlreadyStarted
	}
	l.ctx, l.cancel = context.WithCancel(ctx)
	l.started = true
	go l.run()
	return nil
}

// Stop ends the loop and waits for the running callback, if any, to return.
// Queued callbacks are dropped. Stop must not be called from the loop goroutine.
func (l *Loop) Stop() error {
	l.batchMu.Lock()
	alreadyClosed := l.closed
	l.closed = true
	started := l.started
	l.batchMu.Unlock()

	if !started {
		if !alreadyClosed {
			close(l.stopped)
		}
		return nil
	}

	l.cancel()
	<-l.stopped
	return nil
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.stopped
}

// Post queues fn to run on the loop goroutine.
func (l *Loop) Post(fn func()) error {
	l.batchMu.Lock()
	defer l.batchMu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if len(l.batch) >= l.maxQueue {
		return ErrQueueFull
	}
	l.batch = append(l.batch, queued{fn: fn, seq: l.seq})
	l.seq++

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Do runs fn on the loop and waits for it to return. Calling Do from the loop
// goroutine deadlocks.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if err := l.Post(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		select {
		case <-done:
			return nil
		default:
			return ErrClosed
		}
	}
}

// Now returns the time since the loop was created on the monotonic clock.
func (l *Loop) Now() time.Duration {
	return time.Since(l.origin)
}

// Processed returns the number of callbacks the loop has run.
func (l *Loop) Processed() uint64 {
	return l.processed.Load()
}

// run is the main loop
func (l *Loop) run() {
	defer close(l.stopped)
	defer func() {
		l.batchMu.Lock()
		l.closed = true
		l.batch = nil
		l.batchMu.Unlock()
	}()

	for {
		select {
		case <-l.ctx.Done():
			return
		case <-l.wake:
			l.processBatch()
		}
	}
}
