package scouter

import (
	"fmt"
	"time"
)

// Snapshot is a point-in-time copy of a controller's state, for ops endpoints and
// persistence.
type Snapshot struct {
	State         RunState      `json:"state" yaml:"state"`
	Running       bool          `json:"running" yaml:"running"`
	Started       bool          `json:"started" yaml:"started"`
	ForceStart    bool          `json:"force_start" yaml:"force_start"`
	Visible       bool          `json:"visible" yaml:"visible"`
	BaseMillis    int64         `json:"base_millis" yaml:"base_millis"`
	Elapsed       time.Duration `json:"elapsed" yaml:"elapsed"`
	Session       string        `json:"session,omitempty" yaml:"session,omitempty"`
	ShutdownArmed bool          `json:"shutdown_armed" yaml:"shutdown_armed"`
	Ticks         uint64        `json:"ticks" yaml:"ticks"`
	Shutdowns     uint64        `json:"shutdowns" yaml:"shutdowns"`
	Frame         Frame         `json:"frame" yaml:"frame"`
	Config        Config        `json:"config" yaml:"config"`
}

// Snapshot copies the controller's state. Elapsed is the value computed by the most
// recent update, not a fresh reading.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:         c.chart.Current(),
		Running:       c.Running(),
		Started:       c.started,
		ForceStart:    c.forceStart,
		Visible:       c.visible,
		BaseMillis:    c.baseMillis,
		Elapsed:       c.lastElapsed,
		Session:       c.session,
		ShutdownArmed: c.shutdownArmed,
		Ticks:         c.ticks,
		Shutdowns:     c.shutdowns,
		Frame:         c.cfg.Frame(),
		Config:        c.cfg,
	}
}

func (s RunState) MarshalText() ([]byte, error) {
	switch s {
	case Idle, Ticking:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("unknown run state %d", int(s))
}

func (s *RunState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "ticking":
		*s = Ticking
	default:
		return fmt.Errorf("unknown run state %q", text)
	}
	return nil
}
