package pipeline

import (
	"github.com/matzehuels/labeler/pkg/cache"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/place"
	"github.com/matzehuels/labeler/pkg/core/source"
	"github.com/matzehuels/labeler/pkg/layout"
	"github.com/matzehuels/labeler/pkg/scene"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout places the labels of s for the interaction state ix.
//
// Scatter, line and axis scenes take the collision path and carry their
// suppressed candidates for debug overlays. Marimekko scenes take the
// spacer path and carry none.
func ComputeLayout(e *place.Engine, s *scene.Scene, ix label.Interaction) (layout.Layout, error) {
	l := layout.Layout{
		Chart:       s.Chart,
		Container:   s.Container,
		Interaction: ix,
	}

	if s.Chart == source.ChartMarimekko {
		l.Labels = e.Spread(s.MarimekkoSource(), s.Container, ix)
	} else {
		src, err := s.Source()
		if err != nil {
			return layout.Layout{}, err
		}
		cands := e.Candidates(src, s.Container, ix)
		l.Labels = make([]label.Output, len(cands))
		for i, c := range cands {
			l.Labels[i] = label.ToOutput(c)
		}
		l.Candidates = layout.FromCandidates(cands)
	}

	l.Visible = label.Visible(l.Labels)
	return l, nil
}

// SceneHash returns the content hash of the scene data. The interaction
// state is left out; it is keyed separately.
func SceneHash(s *scene.Scene) (string, error) {
	data := *s
	data.Interaction = label.Interaction{}
	return cache.HashJSON(data)
}

// inputs counts the scene elements that can produce a label.
func inputs(s *scene.Scene) int {
	n := len(s.Points) + len(s.Series) + len(s.Bars)
	if s.Axis != nil {
		n += len(s.Axis.Ticks)
	}
	return n
}
