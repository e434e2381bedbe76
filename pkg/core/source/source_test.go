package source

import (
	"testing"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/label/chunk"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

// fixed measures every character as 10 wide and every line as 10 tall.
var fixed = textmeasure.OracleFunc(func(text string, _ textmeasure.Font) geom.Size {
	return geom.Size{W: 10 * float64(len([]rune(text))), H: 10}
})

func TestChartValid(t *testing.T) {
	for _, c := range Charts {
		if !c.Valid() {
			t.Errorf("%q.Valid() = false", c)
		}
	}
	if Chart("pie").Valid() {
		t.Error(`"pie".Valid() = true`)
	}
}

func TestScatterCandidates(t *testing.T) {
	s := Scatter{
		Font: textmeasure.Font{Size: 12},
		Points: []Point{
			{ID: "a", Text: "ab", X: 100, Y: 50},
			{ID: "b", Group: "g", Text: "abc", X: 10, Y: 20, Kind: label.KindEnd, Font: textmeasure.Font{Size: 16}},
			{ID: "c", X: 0, Y: 0},
		},
	}
	got := s.Candidates(fixed)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}

	a := got[0]
	if want := (geom.Box{X: 104, Y: 45, W: 20, H: 10}); a.Bounds != want {
		t.Errorf("a.Bounds = %+v, want %+v", a.Bounds, want)
	}
	if a.GroupKey != "a" {
		t.Errorf("a.GroupKey = %q, want own ID", a.GroupKey)
	}
	if a.Kind != label.KindMid {
		t.Errorf("a.Kind = %q, want mid", a.Kind)
	}
	if a.Font.Size != 12 {
		t.Errorf("a.Font.Size = %v, want chart default 12", a.Font.Size)
	}

	b := got[1]
	if b.GroupKey != "g" || b.Kind != label.KindEnd || b.Font.Size != 16 {
		t.Errorf("b = %+v", b)
	}
	if b.Anchor != (geom.Point{X: 10, Y: 20}) {
		t.Errorf("b.Anchor = %+v", b.Anchor)
	}
}

func TestLineEndCandidates(t *testing.T) {
	l := LineEnd{
		Gap: 2,
		Series: []Series{
			{Group: "fr", Text: "France", Points: []geom.Point{{X: 0, Y: 0}, {X: 200, Y: 80}}},
			{Group: "empty", Text: "Empty"},
			{Group: "untitled", Points: []geom.Point{{X: 1, Y: 1}}},
		},
	}
	got := l.Candidates(fixed)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	c := got[0]
	if c.ID != "fr" || c.GroupKey != "fr" || c.Kind != label.KindEnd {
		t.Errorf("candidate = %+v", c)
	}
	if want := (geom.Box{X: 202, Y: 75, W: 60, H: 10}); c.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", c.Bounds, want)
	}
}

func TestAxisCandidates(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		a := Axis{
			Orientation: Horizontal,
			Offset:      300,
			Ticks: []Tick{
				{Value: 50, Pos: 50},
				{Value: 0, Pos: 0},
				{Value: 2.5, Pos: 100},
			},
		}
		got := a.Candidates(fixed)
		if len(got) != 3 {
			t.Fatalf("got %d candidates, want 3", len(got))
		}
		wantText := []string{"50", "0", "2.5"}
		wantBoundary := []bool{false, true, true}
		for i, c := range got {
			if c.Text != wantText[i] {
				t.Errorf("[%d].Text = %q, want %q", i, c.Text, wantText[i])
			}
			if c.Boundary != wantBoundary[i] {
				t.Errorf("[%d].Boundary = %v, want %v", i, c.Boundary, wantBoundary[i])
			}
			if c.Kind != label.KindTick {
				t.Errorf("[%d].Kind = %q", i, c.Kind)
			}
		}
		if want := (geom.Box{X: 40, Y: 304, W: 20, H: 10}); got[0].Bounds != want {
			t.Errorf("[0].Bounds = %+v, want %+v", got[0].Bounds, want)
		}
		if got[0].ID != "x:0" {
			t.Errorf("[0].ID = %q, want x:0", got[0].ID)
		}
	})

	t.Run("vertical", func(t *testing.T) {
		a := Axis{
			ID:          "left",
			Orientation: Vertical,
			Offset:      60,
			Ticks:       []Tick{{Value: 1, Pos: 200, Text: "1k"}},
		}
		got := a.Candidates(fixed)
		if want := (geom.Box{X: 36, Y: 195, W: 20, H: 10}); got[0].Bounds != want {
			t.Errorf("Bounds = %+v, want %+v", got[0].Bounds, want)
		}
		if !got[0].Boundary {
			t.Error("single tick should be a boundary tick")
		}
		if got[0].ID != "left:0" {
			t.Errorf("ID = %q", got[0].ID)
		}
	})
}

func TestMarimekko(t *testing.T) {
	m := Marimekko{
		Bars: []Bar{
			{ID: "a", Text: "A", X: 0, Width: 40, HasValue: true},
			{ID: "b", Text: "Bee", X: 40, Width: 10},
		},
	}

	entries := m.Entries(label.Interaction{Selected: []string{"b"}})
	want := []chunk.Entry{
		{ID: "a", Weight: 40, HasValue: true},
		{ID: "b", Weight: 10, Selected: true},
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("Entries()[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}

	labels := m.Labels(fixed)
	if labels[0].Anchor != 20 || labels[1].Anchor != 45 {
		t.Errorf("anchors = %v, %v; want 20, 45", labels[0].Anchor, labels[1].Anchor)
	}
	if labels[1].Size != (geom.Size{W: 30, H: 10}) {
		t.Errorf("Labels()[1].Size = %+v", labels[1].Size)
	}
}
