package source

import (
	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

// Chart identifies a chart kind.
type Chart string

// Chart kinds.
const (
	ChartScatter   Chart = "scatter"
	ChartLine      Chart = "line"
	ChartAxis      Chart = "axis"
	ChartMarimekko Chart = "marimekko"
)

// Charts lists every supported chart kind.
var Charts = []Chart{ChartScatter, ChartLine, ChartAxis, ChartMarimekko}

// Valid reports whether c is a supported chart kind.
func (c Chart) Valid() bool {
	switch c {
	case ChartScatter, ChartLine, ChartAxis, ChartMarimekko:
		return true
	}
	return false
}

// DefaultGap is the distance between an anchor and its label.
const DefaultGap = 4.0

// Source builds the label candidates of one chart.
type Source interface {
	Chart() Chart
	Candidates(o textmeasure.Oracle) []label.Candidate
}

// fontOr returns f with zero fields filled from fallback.
func fontOr(f, fallback textmeasure.Font) textmeasure.Font {
	if f.Size <= 0 {
		f.Size = fallback.Size
	}
	if f.Weight == 0 {
		f.Weight = fallback.Weight
	}
	if f.Family == "" {
		f.Family = fallback.Family
	}
	return f
}

func gapOr(g float64) float64 {
	if g <= 0 {
		return DefaultGap
	}
	return g
}

// rightOf places a box of size s with its left edge gap units right of p,
// vertically centered on p.
func rightOf(p geom.Point, s geom.Size, gap float64) geom.Box {
	return geom.At(geom.Point{X: p.X + gap, Y: p.Y - s.H/2}, s)
}

// leftOf places a box of size s with its right edge gap units left of p,
// vertically centered on p.
func leftOf(p geom.Point, s geom.Size, gap float64) geom.Box {
	return geom.At(geom.Point{X: p.X - gap - s.W, Y: p.Y - s.H/2}, s)
}
