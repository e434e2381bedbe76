package spacer

import (
	"math"

	"github.com/matzehuels/labeler/pkg/core/geom"
)

// Connectors returns one polyline per item, leading from the item's anchor
// at y = top down to its label at y = top + band.
//
// Unshifted items get a straight vertical line. Consecutive items shifted in
// the same direction form a run; each member of a run gets a bent line
// (down, across, down) whose horizontal hop sits at its own height, spread
// evenly across the band. Hop heights are ordered so that lines within a run
// never cross: leftward runs step down from left to right, rightward runs
// step up.
//
// items must be in the order returned by Space. Items with an unusable
// preferred position get a nil path.
func Connectors(items []Item, top, band float64) [][]geom.Point {
	paths := make([][]geom.Point, len(items))
	bottom := top + band

	for start := 0; start < len(items); {
		it := items[start]
		if math.IsNaN(it.Preferred) || math.IsInf(it.Preferred, 0) {
			start++
			continue
		}
		dir := direction(it)
		if dir == 0 {
			paths[start] = []geom.Point{{X: it.Preferred, Y: top}, {X: it.Preferred, Y: bottom}}
			start++
			continue
		}

		end := start + 1
		for end < len(items) && direction(items[end]) == dir {
			end++
		}

		n := end - start
		for k := 0; k < n; k++ {
			level := k
			if dir > 0 {
				level = n - 1 - k
			}
			hop := top + band*float64(level+1)/float64(n+1)
			cur := items[start+k]
			paths[start+k] = []geom.Point{
				{X: cur.Preferred, Y: top},
				{X: cur.Preferred, Y: hop},
				{X: cur.Corrected, Y: hop},
				{X: cur.Corrected, Y: bottom},
			}
		}
		start = end
	}
	return paths
}

// direction is -1 for items moved left, +1 for items moved right and 0 for
// items left in place or with unusable positions.
func direction(it Item) int {
	if math.IsNaN(it.Corrected) || math.IsNaN(it.Preferred) {
		return 0
	}
	switch {
	case it.Corrected < it.Preferred:
		return -1
	case it.Corrected > it.Preferred:
		return 1
	}
	return 0
}
