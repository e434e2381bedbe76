// Package geom provides the axis-aligned geometry shared by every label
// placement stage.
//
// # Coordinates
//
// All values are canvas units (typically SVG pixels). The origin is the
// top-left corner and Y increases downward, so a [Box] is described by its
// top-left corner plus a width and height.
//
// # Malformed Geometry
//
// Upstream data can produce NaN or infinite coordinates. Such boxes are never
// "repaired": [Overlaps] reports false whenever either box is malformed and
// [Clamp] returns a malformed box unchanged. A broken label therefore never
// hides a well-formed one.
//
// # Clamping
//
// [Clamp] keeps a label inside its container by translation only. A label
// that spills across a vertical edge is flipped to the other side of its
// anchor (it moves by its own width), while a label that spills across a
// horizontal edge is pinned to that edge:
//
//	b := geom.Box{X: -5, Y: 10, W: 40, H: 12}
//	c := geom.Box{X: 0, Y: 0, W: 500, H: 300}
//	geom.Clamp(b, c) // {X: 35, Y: 10, W: 40, H: 12}
package geom
