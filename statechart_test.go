package scouter

import "testing"

// Test construction errors mirror the checks in newRunChart.
func TestNewRunChartErrors(t *testing.T) {
	if _, err := newRunChart(); err == nil {
		t.Error("expected error for no states")
	}
	if _, err := newRunChart(&chartState{id: Idle}, nil); err == nil {
		t.Error("expected error for nil state")
	}
	if _, err := newRunChart(&chartState{id: Idle}, &chartState{id: Idle}); err == nil {
		t.Error("expected error for duplicate state")
	}
	if _, err := newRunChart(&chartState{id: Idle, initial: true}, &chartState{id: Ticking, initial: true}); err == nil {
		t.Error("expected error for two initial states")
	}
}

// Test the first state is initial when none is marked.
func TestRunChartDefaultInitial(t *testing.T) {
	m, err := newRunChart(&chartState{id: Ticking}, &chartState{id: Idle})
	if err != nil {
		t.Fatal(err)
	}
	if m.Current() != Ticking {
		t.Errorf("expected first state to be initial, got %s", m.Current())
	}
}

// Test a rejected guard takes no transition and runs no actions.
func TestRunChartGuardRejects(t *testing.T) {
	var actions int
	a := &chartState{id: Idle, initial: true, exit: func(_, _ RunState) { actions++ }}
	b := &chartState{id: Ticking, entry: func(_, _ RunState) { actions++ }}
	a.on(evReconcile, b, func(_, _ RunState) bool { return false })

	m, err := newRunChart(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if m.send(evReconcile) {
		t.Error("expected no transition")
	}
	if m.Current() != Idle || actions != 0 {
		t.Errorf("expected idle with no actions, got %s and %d actions", m.Current(), actions)
	}
}

// Test exit runs before entry, and entry already sees the target as current.
func TestRunChartTransitionOrder(t *testing.T) {
	var order []string
	var m *runChart

	a := &chartState{id: Idle, initial: true}
	b := &chartState{id: Ticking}
	a.exit = func(from, to RunState) {
		order = append(order, "exit "+from.String()+" current="+m.Current().String())
	}
	b.entry = func(from, to RunState) {
		order = append(order, "entry "+to.String()+" current="+m.Current().String())
	}
	a.on(evReconcile, b, nil)
	b.on(evReconcile, a, nil)

	var err error
	m, err = newRunChart(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !m.send(evReconcile) {
		t.Fatal("expected transition")
	}

	want := []string{"exit idle current=idle", "entry ticking current=ticking"}
	if len(order) != len(want) || order[0] != want[0] || order[1] != want[1] {
		t.Errorf("expected %v, got %v", want, order)
	}
	if !m.send(evReconcile) || m.Current() != Idle {
		t.Errorf("expected transition back to idle, got %s", m.Current())
	}
}

// Test an event with no transition is ignored.
func TestRunChartUnknownEvent(t *testing.T) {
	a := &chartState{id: Idle}
	m, err := newRunChart(a)
	if err != nil {
		t.Fatal(err)
	}
	if m.send(chartEvent(99)) {
		t.Error("expected unknown event to be ignored")
	}
}

func TestRunStateText(t *testing.T) {
	for _, s := range []RunState{Idle, Ticking} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back RunState
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Errorf("%s: round trip gave %s, %v", s, back, err)
		}
	}
	if _, err := RunState(7).MarshalText(); err == nil {
		t.Error("expected error for unknown state")
	}
	var s RunState
	if err := s.UnmarshalText([]byte("paused")); err == nil {
		t.Error("expected error for unknown name")
	}
	if RunState(7).String() != "RunState(7)" {
		t.Errorf("unexpected String: %s", RunState(7))
	}
}
