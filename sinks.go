package scouter

// Frame is what the controller hands to the render sink on every update.
type Frame struct {
	Label string  `json:"label" yaml:"label"`
	Size  float64 `json:"size" yaml:"size"`
	Color Color   `json:"color" yaml:"color"`
}

// RenderSink receives frames. Render must be fast and must not block.
type RenderSink interface {
	Render(Frame)
}

// ShutdownSink is asked to terminate the hosting surface. The request cannot be
// declined; the host is expected to detach the controller eventually.
type ShutdownSink interface {
	Shutdown()
}

// ChangeListener is notified after every update.
type ChangeListener interface {
	OnChange()
}

// RenderFunc adapts a function to RenderSink.
type RenderFunc func(Frame)

func (f RenderFunc) Render(fr Frame) { f(fr) }

// ShutdownFunc adapts a function to ShutdownSink.
type ShutdownFunc func()

func (f ShutdownFunc) Shutdown() { f() }

// ListenerFunc adapts a function to ChangeListener.
type ListenerFunc func()

func (f ListenerFunc) OnChange() { f() }
