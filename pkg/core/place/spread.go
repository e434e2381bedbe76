package place

import (
	"math"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/label/chunk"
	"github.com/matzehuels/labeler/pkg/core/label/spacer"
	"github.com/matzehuels/labeler/pkg/core/source"
)

// Spread lays out Marimekko bar labels along the bottom of container.
//
// A budget derived from the container width and label height caps how many
// bars get a label; the chunked selector picks which. Selected bars are
// spaced apart along the x axis and joined to their bar by a connector
// through the marker band. The result holds one output per bar, in bar
// order; unselected bars are present with Visible false.
func (e *Engine) Spread(m source.Marimekko, container geom.Box, ix label.Interaction) []label.Output {
	labels := m.Labels(e.oracle)
	out := make([]label.Output, len(labels))
	if len(labels) == 0 {
		return out
	}

	var widest, tallest float64
	for _, l := range labels {
		widest = math.Max(widest, l.Size.W)
		tallest = math.Max(tallest, l.Size.H)
	}

	budget := chunk.Budget(container.W, tallest, e.opts.LabelPadding, e.opts.Budget)
	picks := chunk.Select(m.Entries(ix), budget)

	items := make([]spacer.Item, len(picks))
	byID := make(map[string]int, len(picks))
	for k, i := range picks {
		items[k] = spacer.Item{ID: labels[i].ID, Preferred: labels[i].Anchor}
		byID[labels[i].ID] = i
	}

	spaced := spacer.Space(items, spacer.Footprint(widest, tallest, m.Angle), container.Right())
	paths := spacer.Connectors(spaced, m.Baseline, m.BandHeight)

	for i, l := range labels {
		out[i] = label.Output{
			ID:         l.ID,
			Text:       l.Text,
			X:          l.Anchor,
			Y:          m.Baseline + m.BandHeight,
			Width:      l.Size.W,
			Height:     l.Size.H,
			FontSize:   m.Font.Size,
			FontWeight: m.Font.Weight,
			Color:      l.Color,
			Rotate:     m.Angle,
		}
	}
	for k, it := range spaced {
		i, ok := byID[it.ID]
		if !ok {
			continue
		}
		out[i].X = it.Corrected
		out[i].Visible = true
		out[i].Connector = paths[k]
	}
	return out
}
