package geom

import "math"

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Valid reports whether both coordinates are finite.
func (p Point) Valid() bool { return finite(p.X) && finite(p.Y) }

// Size is a width/height pair, as returned by a text bounds oracle.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Box is an axis-aligned rectangle anchored at its top-left corner.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// At returns a box of size s whose top-left corner is p.
func At(p Point, s Size) Box { return Box{X: p.X, Y: p.Y, W: s.W, H: s.H} }

// Left returns the minimum X of the box.
func (b Box) Left() float64 { return b.X }

// Right returns the maximum X of the box.
func (b Box) Right() float64 { return b.X + b.W }

// Top returns the minimum Y of the box.
func (b Box) Top() float64 { return b.Y }

// Bottom returns the maximum Y of the box.
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// Valid reports whether every field is finite and the size is non-negative.
func (b Box) Valid() bool {
	return finite(b.X) && finite(b.Y) && finite(b.W) && finite(b.H) && b.W >= 0 && b.H >= 0
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool { return b.W <= 0 || b.H <= 0 }

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	b.X += dx
	b.Y += dy
	return b
}

// Inset shrinks the box by d on every side. A negative d grows it.
// Insetting past the center collapses the box to zero size at its center.
func (b Box) Inset(d float64) Box {
	cx, cy := b.CenterX(), b.CenterY()
	b.X += d
	b.Y += d
	b.W -= 2 * d
	b.H -= 2 * d
	if b.W < 0 {
		b.X, b.W = cx, 0
	}
	if b.H < 0 {
		b.Y, b.H = cy, 0
	}
	return b
}

// Contains reports whether b lies entirely inside c.
func (b Box) Contains(c Box) bool {
	return c.Left() >= b.Left() && c.Right() <= b.Right() &&
		c.Top() >= b.Top() && c.Bottom() <= b.Bottom()
}

// Overlaps reports whether the interiors of a and b intersect. Boxes that
// merely touch do not overlap. A zero-height or zero-width box behaves as a
// segment and overlaps whatever it passes through. Malformed boxes never
// overlap anything.
func Overlaps(a, b Box) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a.Left() < b.Right() && b.Left() < a.Right() &&
		a.Top() < b.Bottom() && b.Top() < a.Bottom()
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
