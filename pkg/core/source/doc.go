// Package source turns chart data that is already projected to canvas
// coordinates into label candidates.
//
// Each chart kind implements [Source]; the placement engine only ever sees
// that interface and stays chart-agnostic:
//
//   - [Scatter]: one label per point, right of it and vertically centered
//   - [LineEnd]: one end label per series, right of its last point
//   - [Axis]: one label per tick; the outermost ticks are boundary ticks
//
// [Marimekko] labels are never hidden, so it feeds the spacer path
// (selection plus 1D spacing) and is not a Source.
//
// Sources measure text through a textmeasure.Oracle and derive every box
// from that measurement; boxes are never authored directly.
package source
