package production

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/comalice/scouter"
)

func TestPromMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPromMetrics(reg)
	if err != nil {
		t.Fatalf("NewPromMetrics failed: %v", err)
	}

	m.TickFired()
	m.TickFired()
	m.Rendered()
	m.ShutdownTriggered()
	m.SessionStarted()
	m.SinkPanicked("render")
	m.SinkPanicked("render")
	m.RunningChanged(true)

	checks := map[string]struct {
		got, want float64
	}{
		"ticks":        {promtest.ToFloat64(m.ticks), 2},
		"renders":      {promtest.ToFloat64(m.renders), 1},
		"shutdowns":    {promtest.ToFloat64(m.shutdowns), 1},
		"sessions":     {promtest.ToFloat64(m.sessions), 1},
		"render panic": {promtest.ToFloat64(m.sinkPanics.WithLabelValues("render")), 2},
		"running":      {promtest.ToFloat64(m.running), 1},
	}
	for name, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %v, got %v", name, c.want, c.got)
		}
	}

	m.RunningChanged(false)
	if promtest.ToFloat64(m.running) != 0 {
		t.Error("expected running gauge to drop to 0")
	}

	if _, err := NewPromMetrics(reg); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

var _ scouter.Metrics = (*PromMetrics)(nil)
