package geom

// Clamp translates b so that it stays inside container c. It never resizes
// the box, and each axis is handled independently:
//
//   - left edge outside: move right by the box width
//   - right edge outside: move left by the box width
//   - top edge outside: pin to the container top
//   - bottom edge outside: pin to the container bottom
//
// Labels hang off their anchor at the text-start or text-end edge, so a
// horizontal spill flips the label to the other side of its anchor instead
// of sliding it along the edge. Malformed boxes are returned unchanged.
func Clamp(b, c Box) Box {
	if !b.Valid() || !c.Valid() {
		return b
	}

	switch {
	case b.Left() < c.Left():
		b.X += b.W
	case b.Right() > c.Right():
		b.X -= b.W
	}

	switch {
	case b.Top() < c.Top():
		b.Y = c.Top()
	case b.Bottom() > c.Bottom():
		b.Y = c.Bottom() - b.H
	}
	return b
}
