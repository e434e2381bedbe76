// Package chunk picks a representative subset of labels when an axis has
// far more candidates than room for labels.
//
// The axis is cut into contiguous chunks of roughly equal weight (for a
// Marimekko chart the weight of a bar is its width), and one label is kept
// per chunk. Labels therefore end up evenly spaced by visual weight rather
// than by index, so dense stretches of the axis are not over-represented.
//
// Some candidates are always kept:
//
//   - the first and last candidate
//   - the heaviest candidate that has a value
//   - the heaviest candidate that has no value
//   - every candidate the user selected
//
// A chunk that already holds one of these keeps it instead of adding its
// own heaviest member.
package chunk

import (
	"math"
	"slices"
)

// Budget defaults.
const (
	DefaultDivisor   = 3.0
	DefaultMaxLabels = 20
)

// Entry is one candidate along the axis, in axis order.
type Entry struct {
	ID       string
	Weight   float64
	HasValue bool
	Selected bool
}

// BudgetOptions tunes the label budget. Zero fields use the defaults.
type BudgetOptions struct {
	Divisor   float64
	MaxLabels int
}

// Budget returns how many labels fit along an axis:
//
//	floor(min(available / (labelHeight + padding) / divisor, maxLabels))
//
// Degenerate inputs (non-positive or non-finite sizes) yield 0.
func Budget(available, labelHeight, padding float64, opts BudgetOptions) int {
	if opts.Divisor <= 0 {
		opts.Divisor = DefaultDivisor
	}
	if opts.MaxLabels <= 0 {
		opts.MaxLabels = DefaultMaxLabels
	}
	slot := labelHeight + padding
	if !(slot > 0) || !(available > 0) || math.IsInf(available, 0) {
		return 0
	}
	n := math.Min(available/slot/opts.Divisor, float64(opts.MaxLabels))
	return int(math.Floor(n))
}

// weightEpsilon absorbs float drift when accumulating chunk weights.
const weightEpsilon = 1e-9

// Select returns the indices of the entries to label, ascending and
// without duplicates. With a budget of zero or less only the always-kept
// entries are returned. When no entry carries weight every entry counts
// as one.
func Select(entries []Entry, budget int) []int {
	n := len(entries)
	if n == 0 {
		return nil
	}

	w, total := weights(entries)
	forced := forcedSet(entries, w)
	picks := make(map[int]bool, max(budget, 0)+len(forced))
	for i := range forced {
		picks[i] = true
	}

	if budget > 0 {
		threshold := total / float64(budget)
		chunkStart := 0
		var acc float64
		for i := range entries {
			acc += w[i]
			if acc+weightEpsilon >= threshold || i == n-1 {
				pickChunk(w, chunkStart, i+1, forced, picks)
				chunkStart = i + 1
				acc = 0
			}
		}
	}

	out := make([]int, 0, len(picks))
	for i := range picks {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// pickChunk adds the representative of the chunk [lo, hi) to picks.
func pickChunk(w []float64, lo, hi int, forced, picks map[int]bool) {
	for i := lo; i < hi; i++ {
		if forced[i] {
			return
		}
	}
	best := lo
	for i := lo + 1; i < hi; i++ {
		if w[i] > w[best] {
			best = i
		}
	}
	picks[best] = true
}

func forcedSet(entries []Entry, w []float64) map[int]bool {
	forced := map[int]bool{0: true, len(entries) - 1: true}

	heaviestValued, heaviestEmpty := -1, -1
	for i, e := range entries {
		if e.Selected {
			forced[i] = true
		}
		if e.HasValue {
			if heaviestValued < 0 || w[i] > w[heaviestValued] {
				heaviestValued = i
			}
		} else if heaviestEmpty < 0 || w[i] > w[heaviestEmpty] {
			heaviestEmpty = i
		}
	}
	if heaviestValued >= 0 {
		forced[heaviestValued] = true
	}
	if heaviestEmpty >= 0 {
		forced[heaviestEmpty] = true
	}
	return forced
}

// weights sanitizes entry weights: malformed or negative weights count as
// zero, and an all-zero axis falls back to unit weights.
func weights(entries []Entry) ([]float64, float64) {
	w := make([]float64, len(entries))
	var total float64
	for i, e := range entries {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight < 0 {
			continue
		}
		w[i] = e.Weight
		total += e.Weight
	}
	if total > 0 {
		return w, total
	}
	for i := range w {
		w[i] = 1
	}
	return w, float64(len(w))
}
