// Package collide hides lower-priority labels that overlap higher-priority
// ones.
//
// # Algorithm
//
// Candidates are visited in descending priority (ties by ascending ID). Each
// visible candidate i is compared against every later visible candidate j;
// if the box of i, inset by a pair-specific padding, overlaps the box of j,
// then j is hidden. Hidden candidates are skipped on both sides of the
// comparison, so a label that lost a collision can never suppress another.
//
// The padding is the amount the higher-priority box is shrunk before the
// test. A positive padding tolerates some visual overlap; a negative
// padding demands extra clearance:
//
//	inset(+6): highlighted end labels may touch
//	inset(-6): ordinary labels must keep a 6px gap
//
// The pass is O(n²), which is fine for the tens of labels a chart shows.
// Malformed geometry never collides (see geom.Overlaps).
package collide

import (
	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/label/priority"
)

// Default paddings.
const (
	LoosePad  = 6.0
	StrictPad = -6.0
	TickPad   = -4.0
)

// PadFunc returns the inset applied to hi's bounds when testing it against
// lo. hi always has the higher (or equal, earlier-ordered) priority.
type PadFunc func(hi, lo *label.Candidate) float64

// FixedPad uses the same padding for every pair.
func FixedPad(p float64) PadFunc {
	return func(_, _ *label.Candidate) float64 { return p }
}

// HighlightPad returns loose when both groups share a highlight class
// (both hovered, both focused or both idle) and lo is an end label, and
// strict otherwise.
func HighlightPad(ix label.Interaction, loose, strict float64) PadFunc {
	return func(hi, lo *label.Candidate) float64 {
		if lo.Kind == label.KindEnd && ix.Class(hi.GroupKey) == ix.Class(lo.GroupKey) {
			return loose
		}
		return strict
	}
}

// Suppress returns a copy of cands, in the same order, with colliding
// lower-priority candidates marked hidden. Candidates that arrive hidden
// stay hidden and take no part in the pass.
func Suppress(cands []label.Candidate, pad PadFunc) []label.Candidate {
	out := label.Clone(cands)
	order := priority.Order(out)

	for a, i := range order {
		hi := &out[i]
		if hi.Hidden {
			continue
		}
		for _, j := range order[a+1:] {
			lo := &out[j]
			if lo.Hidden {
				continue
			}
			if geom.Overlaps(hi.Bounds.Inset(pad(hi, lo)), lo.Bounds) {
				lo.Hidden = true
			}
		}
	}
	return out
}

// SuppressTicks scores tick labels with s and suppresses them with a single
// fixed padding. A nil s uses priority.NewTick.
func SuppressTicks(ticks []label.Candidate, s priority.Scorer, pad float64) []label.Candidate {
	if s == nil {
		s = priority.NewTick()
	}
	scored := priority.Apply(ticks, s, label.Interaction{})
	return Suppress(scored, FixedPad(pad))
}

// Collisions lists the pairs of visible candidates (by index) whose boxes
// still overlap under pad. It is empty after a successful Suppress.
func Collisions(cands []label.Candidate, pad PadFunc) [][2]int {
	var pairs [][2]int
	order := priority.Order(cands)
	for a, i := range order {
		if cands[i].Hidden {
			continue
		}
		for _, j := range order[a+1:] {
			if cands[j].Hidden {
				continue
			}
			if geom.Overlaps(cands[i].Bounds.Inset(pad(&cands[i], &cands[j])), cands[j].Bounds) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
