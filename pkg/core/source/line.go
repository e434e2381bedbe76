package source

import (
	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

// Series is one line of a line chart. Its last point carries the label.
type Series struct {
	Group  string           `json:"group"`
	Text   string           `json:"text"`
	Color  string           `json:"color,omitempty"`
	Points []geom.Point     `json:"points"`
	Font   textmeasure.Font `json:"font,omitempty"`
}

// LineEnd labels the end of every series of a line chart.
type LineEnd struct {
	Series []Series
	Font   textmeasure.Font
	Gap    float64
}

// Chart implements Source.
func (l LineEnd) Chart() Chart { return ChartLine }

// Candidates implements Source. Series without points or text are skipped.
// The series group doubles as the candidate ID.
func (l LineEnd) Candidates(o textmeasure.Oracle) []label.Candidate {
	gap := gapOr(l.Gap)
	out := make([]label.Candidate, 0, len(l.Series))
	for _, s := range l.Series {
		if len(s.Points) == 0 || s.Text == "" {
			continue
		}
		end := s.Points[len(s.Points)-1]
		font := fontOr(s.Font, l.Font)
		out = append(out, label.Candidate{
			ID:       s.Group,
			Text:     s.Text,
			Font:     font,
			Color:    s.Color,
			Bounds:   rightOf(end, o.Measure(s.Text, font), gap),
			Anchor:   end,
			GroupKey: s.Group,
			Kind:     label.KindEnd,
		})
	}
	return out
}
