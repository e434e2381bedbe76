package source

import (
	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/label/chunk"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

// DefaultAngle is the rotation, in degrees, of Marimekko bar labels.
const DefaultAngle = 45.0

// Bar is one column of a Marimekko chart, in canvas coordinates.
// HasValue is false for entities without data; they still get a column.
type Bar struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Color    string  `json:"color,omitempty"`
	X        float64 `json:"x"`
	Width    float64 `json:"width"`
	HasValue bool    `json:"has_value"`
}

// Center returns the horizontal center of the bar, where its label wants
// to sit.
func (b Bar) Center() float64 { return b.X + b.Width/2 }

// Marimekko labels the bars of a Marimekko chart. Labels hang below the
// bars: connectors start at Baseline and labels start BandHeight below it,
// rotated by Angle degrees. An Angle of 0 leaves them unrotated.
type Marimekko struct {
	Bars       []Bar
	Font       textmeasure.Font
	Angle      float64
	Baseline   float64
	BandHeight float64
}

// BarLabel is a measured Marimekko label.
type BarLabel struct {
	ID     string
	Text   string
	Color  string
	Anchor float64
	Size   geom.Size
}

// Chart reports the chart kind; Marimekko is not a Source.
func (m Marimekko) Chart() Chart { return ChartMarimekko }

// Entries returns the selector input for the bars, in bar order. Bar width
// is the weight and bars whose ID is selected in ix are forced.
func (m Marimekko) Entries(ix label.Interaction) []chunk.Entry {
	out := make([]chunk.Entry, len(m.Bars))
	for i, b := range m.Bars {
		out[i] = chunk.Entry{
			ID:       b.ID,
			Weight:   b.Width,
			HasValue: b.HasValue,
			Selected: ix.IsSelected(b.ID),
		}
	}
	return out
}

// Labels measures the label of every bar, in bar order.
func (m Marimekko) Labels(o textmeasure.Oracle) []BarLabel {
	out := make([]BarLabel, len(m.Bars))
	for i, b := range m.Bars {
		out[i] = BarLabel{
			ID:     b.ID,
			Text:   b.Text,
			Color:  b.Color,
			Anchor: b.Center(),
			Size:   o.Measure(b.Text, m.Font),
		}
	}
	return out
}
