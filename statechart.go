package scouter

import (
	"errors"
	"fmt"
)

// RunState names a node of the controller's run chart.
type RunState int

const (
	Idle RunState = iota
	Ticking
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ticking:
		return "ticking"
	}
	return fmt.Sprintf("RunState(%d)", int(s))
}

type chartEvent int

// evReconcile is sent after every change to started, forceStart or visible.
const evReconcile chartEvent = iota

type action func(from, to RunState)
type guard func(from, to RunState) bool

// ---

type chartState struct {
	id          RunState
	transitions []*chartTransition
	entry       action
	exit        action
	initial     bool
}

type chartTransition struct {
	event  chartEvent
	source *chartState
	target *chartState
	guard  guard // nil --> always
}

// runChart is a flat chart with one active state. The controller's running flag is
// "current is Ticking"; there is no separate boolean to drift out of sync.
type runChart struct {
	states  map[RunState]*chartState
	current *chartState
}

func newRunChart(states ...*chartState) (*runChart, error) {
	if len(states) == 0 {
		return nil, errors.New("no states provided")
	}
	m := &runChart{states: map[RunState]*chartState{}}

	var initial *chartState
	for _, s := range states {
		if s == nil {
			return nil, errors.New("nil state")
		}
		if _, exists := m.states[s.id]; exists {
			return nil, fmt.Errorf("duplicate state %s", s.id)
		}
		m.states[s.id] = s
		if s.initial {
			if initial != nil {
				return nil, errors.New("more than one initial state")
			}
			initial = s
		}
	}

	if initial == nil {
		initial = states[0]
	}
	m.current = initial

	for _, s := range states {
		for _, t := range s.transitions {
			if t != nil && t.source == nil {
				t.source = s
			}
		}
	}

	return m, nil
}

func (s *chartState) on(e chartEvent, target *chartState, g guard) {
	s.transitions = append(s.transitions, &chartTransition{
		event:  e,
		source: s,
		target: target,
		guard:  g,
	})
}

// Current returns the active state.
func (m *runChart) Current() RunState {
	return m.current.id
}

// send delivers evt to the active state and reports whether a transition was taken.
// An event with no matching transition, or whose guard rejects it, is ignored.
func (m *runChart) send(evt chartEvent) bool {
	t := m.pickTransition(m.current, evt)
	if t == nil {
		return false
	}
	if t.guard != nil && !t.guard(t.source.id, t.target.id) {
		return false
	}

	if t.source.exit != nil {
		t.source.exit(t.source.id, t.target.id)
	}
	// current moves before entry so the entry action already observes the new state.
	m.current = t.target
	if t.target.entry != nil {
		t.target.entry(t.source.id, t.target.id)
	}
	return true
}

// pickTransition grabs the first transition for evt in declaration order.
func (m *runChart) pickTransition(s *chartState, evt chartEvent) *chartTransition {
	for _, t := range s.transitions {
		if t == nil || t.event != evt {
			continue
		}
		return t
	}
	return nil
}
