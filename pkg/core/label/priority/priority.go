// Package priority assigns keep-priorities to label candidates.
//
// A higher priority wins every collision. Scores start from the font size,
// so bigger labels naturally beat smaller ones, and interaction state adds
// boosts large enough to dominate any font size:
//
//	priority = fontSize
//	         + 10000 if the label's group is hovered
//	         +  1000 if the label's group is focused
//	         +   100 if the label sits at the end of its series
//
// Tick labels use [Tick] instead: axis extremes outrank whole-number ticks,
// which outrank every other tick, so an axis never loses its end labels
// before its interior ones.
//
// Scorers are pure; identical inputs always yield identical scores.
package priority

import (
	"math"

	"github.com/matzehuels/labeler/pkg/core/label"
)

// Default boosts.
const (
	HoverBoost    = 10000.0
	FocusBoost    = 1000.0
	EndBoost      = 100.0
	BoundaryBoost = 1000.0
	WholeBoost    = 100.0
)

// Scorer computes the keep-priority of a candidate.
type Scorer interface {
	Score(c label.Candidate, ix label.Interaction) float64
}

// Default scores scatter and line labels. The zero value scores by font
// size alone; use [NewDefault] for the standard boosts.
type Default struct {
	Hover float64
	Focus float64
	End   float64
}

// NewDefault returns a Default scorer with the standard boosts.
func NewDefault() Default {
	return Default{Hover: HoverBoost, Focus: FocusBoost, End: EndBoost}
}

// Score implements Scorer.
func (d Default) Score(c label.Candidate, ix label.Interaction) float64 {
	p := c.Font.Size
	if ix.IsHovered(c.GroupKey) {
		p += d.Hover
	}
	if ix.IsFocused(c.GroupKey) {
		p += d.Focus
	}
	if c.Kind == label.KindEnd {
		p += d.End
	}
	return p
}

// Tick scores axis tick labels.
type Tick struct {
	Boundary float64
	Whole    float64
}

// NewTick returns a Tick scorer with the standard boosts.
func NewTick() Tick {
	return Tick{Boundary: BoundaryBoost, Whole: WholeBoost}
}

// Score implements Scorer. Interaction state does not affect ticks.
func (t Tick) Score(c label.Candidate, _ label.Interaction) float64 {
	p := c.Font.Size
	if c.Boundary {
		p += t.Boundary
	}
	if isWhole(c.Value) {
		p += t.Whole
	}
	return p
}

func isWhole(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v)
}

// Apply returns a copy of cands with Priority set by s.
func Apply(cands []label.Candidate, s Scorer, ix label.Interaction) []label.Candidate {
	out := label.Clone(cands)
	for i := range out {
		out[i].Priority = s.Score(out[i], ix)
	}
	return out
}

// Order returns the indices of cands in keep order: highest priority first,
// ties by ascending ID.
func Order(cands []label.Candidate) []int { return label.ByPriority(cands) }
