package source

import (
	"fmt"
	"math"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

// Orientation is the direction an axis runs in.
type Orientation string

// Axis orientations.
const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Tick is one tick mark. Pos is its canvas coordinate along the axis.
type Tick struct {
	Value float64 `json:"value"`
	Pos   float64 `json:"pos"`
	Text  string  `json:"text"`
}

// Axis labels the ticks of one axis. Offset is the canvas coordinate of the
// axis line: its y for a horizontal axis, its x for a vertical one.
// Horizontal tick labels hang centered below the line; vertical tick labels
// sit left of it.
type Axis struct {
	ID          string
	Orientation Orientation
	Offset      float64
	Ticks       []Tick
	Font        textmeasure.Font
	Gap         float64
}

// Chart implements Source.
func (a Axis) Chart() Chart { return ChartAxis }

// Candidates implements Source. The ticks with the smallest and largest
// position are boundary ticks.
func (a Axis) Candidates(o textmeasure.Oracle) []label.Candidate {
	gap := gapOr(a.Gap)
	lo, hi := boundaryTicks(a.Ticks)

	out := make([]label.Candidate, 0, len(a.Ticks))
	for i, t := range a.Ticks {
		text := t.Text
		if text == "" {
			text = formatTick(t.Value)
		}
		size := o.Measure(text, a.Font)

		var anchor geom.Point
		var bounds geom.Box
		if a.Orientation == Vertical {
			anchor = geom.Point{X: a.Offset, Y: t.Pos}
			bounds = leftOf(anchor, size, gap)
		} else {
			anchor = geom.Point{X: t.Pos, Y: a.Offset}
			bounds = geom.At(geom.Point{X: t.Pos - size.W/2, Y: a.Offset + gap}, size)
		}

		out = append(out, label.Candidate{
			ID:       fmt.Sprintf("%s:%d", a.axisID(), i),
			Text:     text,
			Font:     a.Font,
			Bounds:   bounds,
			Anchor:   anchor,
			GroupKey: a.axisID(),
			Kind:     label.KindTick,
			Value:    t.Value,
			Boundary: i == lo || i == hi,
		})
	}
	return out
}

func (a Axis) axisID() string {
	if a.ID != "" {
		return a.ID
	}
	if a.Orientation == Vertical {
		return "y"
	}
	return "x"
}

// boundaryTicks returns the indices of the ticks at either end of the axis,
// or -1 when there are none. Ticks with a malformed position are ignored.
func boundaryTicks(ticks []Tick) (lo, hi int) {
	lo, hi = -1, -1
	for i, t := range ticks {
		if math.IsNaN(t.Pos) || math.IsInf(t.Pos, 0) {
			continue
		}
		if lo < 0 || t.Pos < ticks[lo].Pos {
			lo = i
		}
		if hi < 0 || t.Pos > ticks[hi].Pos {
			hi = i
		}
	}
	return lo, hi
}

func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}
