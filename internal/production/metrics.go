package production

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "scouter"

// PromMetrics is a scouter.Metrics backed by Prometheus collectors.
type PromMetrics struct {
	ticks      prometheus.Counter
	renders    prometheus.Counter
	shutdowns  prometheus.Counter
	sessions   prometheus.Counter
	sinkPanics *prometheus.CounterVec
	running    prometheus.Gauge
}

// NewPromMetrics creates the collectors and registers them with reg.
func NewPromMetrics(reg prometheus.Registerer) (*PromMetrics, error) {
	m := &PromMetrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total number of tick handler fires",
		}),
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Total number of frames handed to the render sink",
		}),
		shutdowns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shutdowns_total",
			Help:      "Total number of shutdown requests",
		}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_sessions_total",
			Help:      "Total number of idle to ticking transitions",
		}),
		sinkPanics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sink_panics_total",
				Help:      "Total sink panics recovered by the controller",
			},
			[]string{
				"sink",
			},
		),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "running",
			Help:      "1 while the controller is ticking",
		}),
	}

	for _, c := range []prometheus.Collector{m.ticks, m.renders, m.shutdowns, m.sessions, m.sinkPanics, m.running} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PromMetrics) TickFired()         { m.ticks.Inc() }
func (m *PromMetrics) Rendered()          { m.renders.Inc() }
func (m *PromMetrics) ShutdownTriggered() { m.shutdowns.Inc() }
func (m *PromMetrics) SessionStarted()    { m.sessions.Inc() }

func (m *PromMetrics) RunningChanged(running bool) {
	if running {
		m.running.Set(1)
		return
	}
	m.running.Set(0)
}

func (m *PromMetrics) SinkPanicked(sink string) {
	m.sinkPanics.With(prometheus.Labels{
		"sink": sink,
	}).Inc()
}
