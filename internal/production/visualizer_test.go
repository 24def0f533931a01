package production

import (
	"strings"
	"testing"

	"github.com/comalice/scouter"
)

func TestDefaultVisualizer_ExportDOT(t *testing.T) {
	v := &DefaultVisualizer{}

	s := sampleSnapshot()
	dot := v.ExportDOT(s)

	for _, want := range []string{
		"digraph RunChart {",
		`"ticking" [style="rounded,filled", fillcolor=lightblue];`,
		`"idle";`,
		`"idle" -> "ticking"`,
		`"ticking" -> "idle"`,
		"session=" + s.Session,
		"ticks=50",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("expected %q in DOT:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT must be closed")
	}

	s.State = scouter.Idle
	s.Session = ""
	dot = v.ExportDOT(s)
	if !strings.Contains(dot, `"idle" [style="rounded,filled"`) || strings.Contains(dot, "session=") {
		t.Errorf("expected idle highlighted without session:\n%s", dot)
	}
}
