package production

import (
	"bytes"
	"fmt"

	"github.com/comalice/scouter"
)

// DefaultVisualizer renders the controller's run chart.
type DefaultVisualizer struct{}

// Edge represents a transition edge.
type Edge struct {
	From  scouter.RunState
	To    scouter.RunState
	Label string
}

// RunChartEdges lists the run chart's transitions.
func RunChartEdges() []Edge {
	return []Edge{
		{From: scouter.Idle, To: scouter.Ticking, Label: "reconcile [(visible || force) && started]"},
		{From: scouter.Ticking, To: scouter.Idle, Label: "reconcile [!((visible || force) && started)]"},
	}
}

// ExportDOT generates Graphviz DOT source for the run chart, highlighting the active
// state and annotating the graph with the snapshot's flags.
func (v *DefaultVisualizer) ExportDOT(s scouter.Snapshot) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph RunChart {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)
	fmt.Fprintf(&buf, "  label=%q;\n", graphLabel(s))

	for _, st := range []scouter.RunState{scouter.Idle, scouter.Ticking} {
		if st == s.State {
			fmt.Fprintf(&buf, "  %q [style=\"rounded,filled\", fillcolor=lightblue];\n", st.String())
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", st.String())
	}

	for _, e := range RunChartEdges() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From.String(), e.To.String(), e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func graphLabel(s scouter.Snapshot) string {
	label := fmt.Sprintf("started=%t force=%t visible=%t ticks=%d shutdowns=%d",
		s.Started, s.ForceStart, s.Visible, s.Ticks, s.Shutdowns)
	if s.Session != "" {
		label += " session=" + s.Session
	}
	return label
}
