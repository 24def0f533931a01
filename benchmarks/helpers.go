// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"time"

	"github.com/comalice/scouter"
	"github.com/comalice/scouter/testutil"
)

// discard is a render and shutdown sink that does nothing.
type discard struct{}

func (discard) Render(scouter.Frame) {}
func (discard) Shutdown()            {}

// GenConfig parses a ticker config with the given cadence and threshold, the same
// way a config file is loaded.
func GenConfig(cadence, threshold time.Duration) scouter.Config {
	doc := fmt.Sprintf("cadence: %s\nshutdown_threshold: %s\n", cadence, threshold)
	cfg, err := scouter.ParseConfig([]byte(doc))
	if err != nil {
		panic(err)
	}
	return cfg
}

// NewSimController returns a started, visible controller on a simulated clock.
func NewSimController(cfg scouter.Config, opts ...scouter.Option) (*scouter.Controller, *testutil.SimScheduler) {
	sched := testutil.NewSimScheduler(10 * time.Second)
	opts = append([]scouter.Option{scouter.WithConfig(cfg), scouter.WithSessionIDs(seqIDs())}, opts...)
	c, err := scouter.New(sched, discard{}, discard{}, opts...)
	if err != nil {
		panic(err)
	}
	c.Start()
	c.OnHostVisibilityChanged(true)
	return c, sched
}

// seqIDs avoids uuid generation cost in tight reconcile loops.
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}
}
