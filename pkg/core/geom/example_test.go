package geom_test

import (
	"fmt"

	"github.com/matzehuels/labeler/pkg/core/geom"
)

func ExampleClamp() {
	container := geom.Box{W: 200, H: 100}

	// Spills past the right edge and above the top.
	b := geom.Box{X: 190, Y: -5, W: 30, H: 12}
	fmt.Printf("%+v\n", geom.Clamp(b, container))
	// Output:
	// {X:160 Y:0 W:30 H:12}
}

func ExampleOverlaps() {
	a := geom.Box{X: 0, Y: 0, W: 10, H: 10}
	fmt.Println(geom.Overlaps(a, geom.Box{X: 5, Y: 5, W: 10, H: 10}))
	fmt.Println(geom.Overlaps(a, geom.Box{X: 10, Y: 0, W: 10, H: 10}))
	// Output:
	// true
	// false
}
