package source

import (
	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

// Point is one labeled scatter point.
type Point struct {
	ID    string           `json:"id"`
	Group string           `json:"group,omitempty"`
	Text  string           `json:"text"`
	X     float64          `json:"x"`
	Y     float64          `json:"y"`
	Kind  label.Kind       `json:"kind,omitempty"`
	Color string           `json:"color,omitempty"`
	Font  textmeasure.Font `json:"font,omitempty"`
}

// Scatter labels the points of a scatter plot. Points in the same group
// (an entity traced over time, for example) share interaction state.
type Scatter struct {
	Points []Point
	Font   textmeasure.Font
	Gap    float64
}

// Chart implements Source.
func (s Scatter) Chart() Chart { return ChartScatter }

// Candidates implements Source. Labels sit right of their point, vertically
// centered on it. Points without text produce no candidate. A point without
// a group forms its own group, and a point without a kind is a mid label.
func (s Scatter) Candidates(o textmeasure.Oracle) []label.Candidate {
	gap := gapOr(s.Gap)
	out := make([]label.Candidate, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Text == "" {
			continue
		}
		font := fontOr(p.Font, s.Font)
		size := o.Measure(p.Text, font)
		anchor := geom.Point{X: p.X, Y: p.Y}

		kind := p.Kind
		if kind == "" {
			kind = label.KindMid
		}

		group := p.Group
		if group == "" {
			group = p.ID
		}
		out = append(out, label.Candidate{
			ID:       p.ID,
			Text:     p.Text,
			Font:     font,
			Color:    p.Color,
			Bounds:   rightOf(anchor, size, gap),
			Anchor:   anchor,
			GroupKey: group,
			Kind:     kind,
		})
	}
	return out
}
