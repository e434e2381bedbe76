package place

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/source"
)

func marimekko(n int, width float64) source.Marimekko {
	bars := make([]source.Bar, n)
	for i := range bars {
		bars[i] = source.Bar{
			ID:       fmt.Sprintf("b%02d", i),
			Text:     fmt.Sprintf("b%02d", i),
			X:        float64(i) * width,
			Width:    width,
			HasValue: true,
		}
	}
	return source.Marimekko{Bars: bars, Angle: 45, Baseline: 100, BandHeight: 20}
}

func TestSpread(t *testing.T) {
	m := marimekko(100, 6)
	container := geom.Box{X: 0, Y: 0, W: 600, H: 200}
	ix := label.Interaction{Selected: []string{"b50"}}

	outs := New(fixed, DefaultOptions()).Spread(m, container, ix)
	if len(outs) != 100 {
		t.Fatalf("got %d outputs, want one per bar", len(outs))
	}

	// budget = floor(600 / (10 + 4) / 3) = 14, plus forced picks
	visible := label.Visible(outs)
	if visible < 2 || visible > 20 {
		t.Errorf("visible = %d, want a budget-sized subset", visible)
	}
	for _, id := range []int{0, 50, 99} {
		if !outs[id].Visible {
			t.Errorf("bar %d should be labeled", id)
		}
	}

	// footprint = 10 * (1 + min(30/10, tan 45°)) = 20
	const footprint = 20.0
	prev := math.Inf(-1)
	for _, o := range outs {
		if !o.Visible {
			if o.Connector != nil {
				t.Errorf("%s: hidden label has a connector", o.ID)
			}
			continue
		}
		if o.X-prev < footprint-1e-9 {
			t.Errorf("%s at %v is closer than %v to its left neighbor at %v", o.ID, o.X, footprint, prev)
		}
		prev = o.X
		if o.Y != 120 || o.Rotate != 45 {
			t.Errorf("%s: Y=%v Rotate=%v, want 120, 45", o.ID, o.Y, o.Rotate)
		}
		if n := len(o.Connector); n != 2 && n != 4 {
			t.Errorf("%s: connector has %d points", o.ID, n)
		}
	}
}

func TestSpreadCrowded(t *testing.T) {
	m := marimekko(5, 4)
	m.Bars[0].Text = "x"
	outs := New(fixed, DefaultOptions()).Spread(m, geom.Box{W: 600, H: 200}, label.Interaction{})

	// Bars 0..4 centered at 2, 6, 10, 14, 18 are pushed right 20 apart.
	want := []float64{2, 22, 42, 62, 82}
	for i, o := range outs {
		if !o.Visible {
			t.Fatalf("%s hidden; every bar fits the budget", o.ID)
		}
		if o.X != want[i] {
			t.Errorf("%s.X = %v, want %v", o.ID, o.X, want[i])
		}
	}
	if first := outs[0].Connector; len(first) != 2 {
		t.Errorf("unshifted label should have a straight connector, got %v", first)
	}
	if last := outs[4].Connector; len(last) != 4 {
		t.Errorf("shifted label should have a bent connector, got %v", last)
	}
}

func TestSpreadEmpty(t *testing.T) {
	outs := New(fixed, DefaultOptions()).Spread(source.Marimekko{}, geom.Box{W: 100, H: 100}, label.Interaction{})
	if len(outs) != 0 {
		t.Errorf("got %d outputs for no bars", len(outs))
	}
}

func TestSpreadUnrotated(t *testing.T) {
	m := marimekko(5, 4)
	m.Angle = 0
	outs := New(fixed, DefaultOptions()).Spread(m, geom.Box{W: 600, H: 200}, label.Interaction{})

	// footprint = 10 * (1 + min(3, tan 0°)) = 10
	want := []float64{2, 12, 22, 32, 42}
	for i, o := range outs {
		if o.Rotate != 0 {
			t.Errorf("%s: Rotate = %v, want 0", o.ID, o.Rotate)
		}
		if o.X != want[i] {
			t.Errorf("%s.X = %v, want %v", o.ID, o.X, want[i])
		}
	}
}
