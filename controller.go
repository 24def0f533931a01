package scouter

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNilScheduler = errors.New("nil scheduler")
	ErrNilSink      = errors.New("nil sink")
)

// Controller drives a repeating tick while it is started and either visible or
// force-started. Every tick renders the configured frame, checks the elapsed time
// against the shutdown threshold and notifies the listener.
//
// A Controller is not safe for concurrent use. All methods, and every callback the
// Scheduler runs, must execute on one goroutine.
type Controller struct {
	cfg        Config
	sched      Scheduler
	render     RenderSink
	shutdown   ShutdownSink
	listener   ChangeListener
	logger     *slog.Logger
	metrics    Metrics
	newSession func() string

	baseMillis int64
	baseSet    bool
	started    bool
	forceStart bool
	visible    bool

	chart *runChart
	task  *tickTask // non-nil iff chart is Ticking

	session       string
	shutdownArmed bool
	lastElapsed   time.Duration
	ticks         uint64
	shutdowns     uint64
}

// tickTask is the controller's handle on one run of the repeating tick. A cancelled
// task never renders or reschedules, even if its timer already fired.
type tickTask struct {
	timer     Timer
	cancelled bool
}

// New builds a controller, sets its base and renders once. Nothing is scheduled until
// Start is called and the run condition holds.
func New(sched Scheduler, render RenderSink, shutdown ShutdownSink, opts ...Option) (*Controller, error) {
	if sched == nil {
		return nil, ErrNilScheduler
	}
	if render == nil {
		return nil, fmt.Errorf("%w: render", ErrNilSink)
	}
	if shutdown == nil {
		return nil, fmt.Errorf("%w: shutdown", ErrNilSink)
	}

	c := &Controller{
		cfg:           DefaultConfig(),
		sched:         sched,
		render:        render,
		shutdown:      shutdown,
		logger:        slog.New(slog.DiscardHandler),
		metrics:       NopMetrics{},
		newSession:    uuid.NewString,
		shutdownArmed: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	chart, err := c.buildChart()
	if err != nil {
		return nil, fmt.Errorf("run chart: %w", err)
	}
	c.chart = chart

	if !c.baseSet {
		c.baseMillis = sched.Now().Milliseconds()
	}
	c.SetBaseMillis(c.baseMillis)
	return c, nil
}

func (c *Controller) buildChart() (*runChart, error) {
	idle := &chartState{id: Idle, initial: true}
	ticking := &chartState{id: Ticking, entry: c.enterTicking, exit: c.exitTicking}

	idle.on(evReconcile, ticking, func(_, _ RunState) bool { return c.shouldRun() })
	ticking.on(evReconcile, idle, func(_, _ RunState) bool { return !c.shouldRun() })

	return newRunChart(idle, ticking)
}

// SetBaseMillis moves the base elapsed time is measured from and updates immediately.
// The schedule is untouched.
func (c *Controller) SetBaseMillis(ms int64) {
	c.baseMillis = ms
	c.update()
}

// BaseMillis returns the current base.
func (c *Controller) BaseMillis() int64 {
	return c.baseMillis
}

// SetListener replaces the change listener. nil clears it.
func (c *Controller) SetListener(l ChangeListener) {
	c.listener = l
}

// SetForceStart lets the controller run while the host surface is not visible.
func (c *Controller) SetForceStart(force bool) {
	c.forceStart = force
	c.reconcile()
}

// Start requests ticking.
func (c *Controller) Start() {
	c.started = true
	c.reconcile()
}

// Stop withdraws the request to tick.
func (c *Controller) Stop() {
	c.started = false
	c.reconcile()
}

// OnHostDetached is called by the host when the surface goes away.
func (c *Controller) OnHostDetached() {
	c.visible = false
	c.reconcile()
}

// OnHostVisibilityChanged is called by the host when the surface is shown or hidden.
func (c *Controller) OnHostVisibilityChanged(visible bool) {
	c.visible = visible
	c.reconcile()
}

func (c *Controller) Running() bool    { return c.chart.Current() == Ticking }
func (c *Controller) Started() bool    { return c.started }
func (c *Controller) ForceStart() bool { return c.forceStart }
func (c *Controller) Visible() bool    { return c.visible }

// Session returns the ID of the current (or most recent) run-session, or "" if the
// controller never ran.
func (c *Controller) Session() string { return c.session }

func (c *Controller) shouldRun() bool {
	return (c.visible || c.forceStart) && c.started
}

func (c *Controller) reconcile() {
	if !c.chart.send(evReconcile) {
		return
	}
	c.metrics.RunningChanged(c.Running())
}

func (c *Controller) enterTicking(_, _ RunState) {
	c.session = c.newSession()
	c.shutdownArmed = true
	c.metrics.SessionStarted()
	c.logger.Debug("ticker running", "session", c.session, "cadence", c.cfg.Cadence)

	t := &tickTask{}
	c.task = t
	c.schedule(t, 0)
}

func (c *Controller) exitTicking(_, _ RunState) {
	c.cancelTask()
	c.logger.Debug("ticker idle", "session", c.session, "ticks", c.ticks)
}

func (c *Controller) schedule(t *tickTask, d time.Duration) {
	t.timer = c.sched.AfterFunc(d, func() { c.fire(t) })
}

func (c *Controller) cancelTask() {
	t := c.task
	if t == nil {
		return
	}
	c.task = nil
	t.cancelled = true
	if t.timer != nil {
		t.timer.Stop()
	}
}

// fire is the tick handler. The next fire is scheduled one cadence after this one
// finishes; lateness is not corrected.
func (c *Controller) fire(t *tickTask) {
	if t.cancelled || t != c.task || !c.Running() {
		return
	}
	c.ticks++
	c.metrics.TickFired()

	c.update()

	// A sink or the listener may have stopped us.
	if t.cancelled || t != c.task {
		return
	}
	c.schedule(t, c.cfg.Cadence)
}

// update renders, checks the shutdown threshold and notifies. The rendered frame does
// not depend on elapsed time; only the shutdown check reads it.
func (c *Controller) update() {
	elapsed := reduceElapsed(elapsedSince(c.sched.Now(), c.baseMillis))
	c.lastElapsed = elapsed

	frame := c.cfg.Frame()
	c.isolate("render", func() { c.render.Render(frame) })
	c.metrics.Rendered()

	if c.Running() {
		c.checkShutdown(elapsed)
	}

	if l := c.listener; l != nil {
		c.isolate("listener", l.OnChange)
	}
}

// checkShutdown fires the shutdown sink once per crossing of the threshold. The gate
// re-arms when elapsed falls back to the threshold or below, and on every new session.
func (c *Controller) checkShutdown(elapsed time.Duration) {
	if elapsed <= c.cfg.ShutdownThreshold {
		c.shutdownArmed = true
		return
	}
	if !c.shutdownArmed {
		return
	}
	c.shutdownArmed = false
	c.shutdowns++
	c.metrics.ShutdownTriggered()
	c.logger.Info("shutdown threshold crossed",
		"session", c.session,
		"elapsed", elapsed,
		"threshold", c.cfg.ShutdownThreshold,
	)
	c.isolate("shutdown", c.shutdown.Shutdown)
}

// isolate runs a sink call so that a panic in it cannot leave a tick half done.
func (c *Controller) isolate(sink string, fn func()) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		c.metrics.SinkPanicked(sink)
		c.logger.Error("sink panicked",
			"sink", sink,
			"session", c.session,
			"panic", fmt.Sprint(p),
			"stack", string(debug.Stack()),
		)
	}()
	fn()
}
