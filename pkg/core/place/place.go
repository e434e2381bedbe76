// Package place runs the label placement pipeline for one chart.
//
// The engine is chart-agnostic. It pulls candidates from a source.Source,
// scores them, clamps them into the container and suppresses collisions:
//
//	candidates -> clamp -> priority -> suppress -> outputs
//
// Marimekko bar labels take the spacer path instead, since they must never
// be hidden once selected:
//
//	budget -> select -> footprint -> space -> connectors -> outputs
//
// Both paths are pure: identical inputs always give identical outputs, and
// no state is kept between calls.
package place

import (
	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/label/chunk"
	"github.com/matzehuels/labeler/pkg/core/label/collide"
	"github.com/matzehuels/labeler/pkg/core/label/priority"
	"github.com/matzehuels/labeler/pkg/core/source"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

// Options tunes the engine. Use [DefaultOptions] as a starting point.
type Options struct {
	// Scorer ranks scatter and line labels. Ticks always use TickScorer.
	Scorer     priority.Scorer
	TickScorer priority.Scorer

	// Insets for the collision test; see collide.
	LoosePad  float64
	StrictPad float64
	TickPad   float64

	// Budget and LabelPadding size the Marimekko label budget.
	Budget       chunk.BudgetOptions
	LabelPadding float64
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		Scorer:       priority.NewDefault(),
		TickScorer:   priority.NewTick(),
		LoosePad:     collide.LoosePad,
		StrictPad:    collide.StrictPad,
		TickPad:      collide.TickPad,
		Budget:       chunk.BudgetOptions{Divisor: chunk.DefaultDivisor, MaxLabels: chunk.DefaultMaxLabels},
		LabelPadding: DefaultLabelPadding,
	}
}

// DefaultLabelPadding separates Marimekko labels in the budget computation.
const DefaultLabelPadding = 4.0

// Engine places labels. It is safe for concurrent use as long as its
// oracle is.
type Engine struct {
	oracle textmeasure.Oracle
	opts   Options
}

// New returns an engine measuring text with o. A nil o uses
// textmeasure.Heuristic; nil scorers use the defaults.
func New(o textmeasure.Oracle, opts Options) *Engine {
	if o == nil {
		o = textmeasure.Heuristic{}
	}
	if opts.Scorer == nil {
		opts.Scorer = priority.NewDefault()
	}
	if opts.TickScorer == nil {
		opts.TickScorer = priority.NewTick()
	}
	return &Engine{oracle: o, opts: opts}
}

// Options returns the engine tuning.
func (e *Engine) Options() Options { return e.opts }

// Candidates runs the collision path up to and including suppression and
// returns the resulting candidates in source order. It is what Place
// renders; callers that need boxes and priorities (debug overlays) use it
// directly.
func (e *Engine) Candidates(src source.Source, container geom.Box, ix label.Interaction) []label.Candidate {
	cands := src.Candidates(e.oracle)
	for i := range cands {
		cands[i].Bounds = geom.Clamp(cands[i].Bounds, container)
	}

	if src.Chart() == source.ChartAxis {
		return collide.SuppressTicks(cands, e.opts.TickScorer, e.opts.TickPad)
	}
	scored := priority.Apply(cands, e.opts.Scorer, ix)
	return collide.Suppress(scored, collide.HighlightPad(ix, e.opts.LoosePad, e.opts.StrictPad))
}

// Place lays out the labels of src inside container. The result holds one
// output per candidate, in source order; suppressed labels are present with
// Visible false.
func (e *Engine) Place(src source.Source, container geom.Box, ix label.Interaction) []label.Output {
	cands := e.Candidates(src, container, ix)
	out := make([]label.Output, len(cands))
	for i, c := range cands {
		out[i] = label.ToOutput(c)
	}
	return out
}
