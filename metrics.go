package scouter

// Metrics receives controller events for external collection.
type Metrics interface {
	TickFired()
	Rendered()
	ShutdownTriggered()
	SessionStarted()
	RunningChanged(running bool)
	// SinkPanicked is called with "render", "shutdown" or "listener".
	SinkPanicked(sink string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) TickFired()          {}
func (NopMetrics) Rendered()           {}
func (NopMetrics) ShutdownTriggered()  {}
func (NopMetrics) SessionStarted()     {}
func (NopMetrics) RunningChanged(bool) {}
func (NopMetrics) SinkPanicked(string) {}
