// Package spacer pushes overlapping labels apart along one axis instead of
// hiding them.
//
// It serves charts where every label must stay visible and belongs 1:1 to a
// fixed anchor, such as entity labels under the bars of a Marimekko chart.
// Every label takes up the same footprint along the axis, so two sweeps are
// enough:
//
//  1. sort by preferred position (ties by ID) and start from it
//  2. forward: push each label right until it clears its left neighbor
//  3. clamp the last label to the axis maximum
//  4. backward: pull each label left until it clears its right neighbor
//
// Left-to-right order is preserved and nothing is hidden. When the labels
// need more room than the axis offers they end up overlapping slightly;
// that is accepted.
//
//	items := []spacer.Item{{ID: "a", Preferred: 10}, {ID: "b", Preferred: 12}, {ID: "c", Preferred: 50}}
//	spacer.Space(items, 20, 100) // corrected: 10, 30, 50
package spacer

import (
	"cmp"
	"math"
	"slices"
)

// Item is the placement of one label along the axis.
type Item struct {
	ID        string  `json:"id"`
	Preferred float64 `json:"preferred"`
	Corrected float64 `json:"corrected"`
}

// Shifted reports whether the sweeps moved the item.
func (it Item) Shifted() bool { return it.Corrected != it.Preferred }

// Footprint returns the width a rotated label occupies along the axis,
// given the unrotated width and height of the longest label and the shared
// rotation angle in degrees.
func Footprint(width, height, angleDeg float64) float64 {
	if height <= 0 {
		return math.Max(width, 0)
	}
	tan := math.Abs(math.Tan(angleDeg * math.Pi / 180))
	return height * (1 + math.Min(width/height, tan))
}

// Space returns the items sorted by preferred position with Corrected set.
// The input slice is not modified. Items whose preferred position is NaN or
// infinite keep it as their corrected position and are appended after the
// spaced items, in their input order.
func Space(items []Item, footprint, maxExtent float64) []Item {
	work := make([]Item, 0, len(items))
	var broken []Item
	for _, it := range items {
		it.Corrected = it.Preferred
		if math.IsNaN(it.Preferred) || math.IsInf(it.Preferred, 0) {
			broken = append(broken, it)
			continue
		}
		work = append(work, it)
	}

	slices.SortStableFunc(work, func(a, b Item) int {
		if c := cmp.Compare(a.Preferred, b.Preferred); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	for i := 1; i < len(work); i++ {
		if floor := work[i-1].Corrected + footprint; work[i].Corrected < floor {
			work[i].Corrected = floor
		}
	}

	if n := len(work); n > 0 && work[n-1].Corrected > maxExtent {
		work[n-1].Corrected = maxExtent
	}

	for i := len(work) - 1; i > 0; i-- {
		if ceil := work[i].Corrected - footprint; work[i-1].Corrected > ceil {
			work[i-1].Corrected = ceil
		}
	}

	return append(work, broken...)
}
