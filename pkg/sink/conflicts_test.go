package sink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/layout"
)

func TestConflictDOT(t *testing.T) {
	l := testLayout()
	l.Candidates = append(l.Candidates, layout.Candidate{
		ID: "far", Bounds: geom.Box{X: 150, Y: 10, W: 20, H: 12}, Priority: 1, Hidden: true,
	})

	dot := ConflictDOT(l)
	for _, want := range []string{
		"digraph conflicts {",
		`"a" -> "b";`,
		`"far" [`,
		`style="rounded,filled,dashed"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `-> "far"`) {
		t.Error("far does not overlap any shown candidate")
	}
}

func TestConflictDOTEmpty(t *testing.T) {
	dot := ConflictDOT(layout.Layout{})
	if strings.Contains(dot, "->") || strings.Contains(dot, "[label") {
		t.Errorf("empty layout produced nodes or edges:\n%s", dot)
	}
}

func TestRenderConflicts(t *testing.T) {
	svg, err := RenderConflicts(context.Background(), testLayout())
	if err != nil {
		t.Fatalf("RenderConflicts() error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not an SVG")
	}
}
