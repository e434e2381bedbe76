package textmeasure

import (
	"math"
	"testing"

	"github.com/matzehuels/labeler/pkg/core/geom"
)

func TestHeuristicMeasure(t *testing.T) {
	tests := []struct {
		name string
		text string
		font Font
		want geom.Size
	}{
		{"empty", "", Font{Size: 10}, geom.Size{}},
		{"zero size", "abc", Font{Size: 0}, geom.Size{}},
		{"single line", "abcd", Font{Size: 10}, geom.Size{W: 22, H: 12}},
		{"two lines", "ab\nabcd", Font{Size: 10}, geom.Size{W: 22, H: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Heuristic{}.Measure(tt.text, tt.font)
			if math.Abs(got.W-tt.want.W) > 1e-9 || math.Abs(got.H-tt.want.H) > 1e-9 {
				t.Errorf("Measure(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHeuristicBoldIsWider(t *testing.T) {
	regular := Heuristic{}.Measure("label", Font{Size: 12})
	bold := Heuristic{}.Measure("label", Font{Size: 12, Weight: WeightBold})
	if bold.W <= regular.W {
		t.Errorf("bold width %v should exceed regular width %v", bold.W, regular.W)
	}
}

func TestOpenTypeMeasure(t *testing.T) {
	o, err := NewOpenType()
	if err != nil {
		t.Fatalf("NewOpenType() error: %v", err)
	}
	defer o.Close()

	short := o.Measure("ab", Font{Size: 12})
	long := o.Measure("abcdefgh", Font{Size: 12})
	if short.W <= 0 || short.H <= 0 {
		t.Fatalf("Measure returned empty size: %+v", short)
	}
	if long.W <= short.W {
		t.Errorf("longer text should be wider: %v <= %v", long.W, short.W)
	}
	if long.H != short.H {
		t.Errorf("single-line heights should match: %v != %v", long.H, short.H)
	}

	big := o.Measure("ab", Font{Size: 24})
	if big.W <= short.W || big.H <= short.H {
		t.Errorf("larger font should measure larger: %+v vs %+v", big, short)
	}

	if got := o.Measure("", Font{Size: 12}); got != (geom.Size{}) {
		t.Errorf("empty text should measure zero, got %+v", got)
	}
}

func TestOpenTypeDeterministic(t *testing.T) {
	o, err := NewOpenType()
	if err != nil {
		t.Fatalf("NewOpenType() error: %v", err)
	}
	defer o.Close()

	a := o.Measure("Germany", Font{Size: 13, Weight: WeightBold})
	b := o.Measure("Germany", Font{Size: 13, Weight: WeightBold})
	if a != b {
		t.Errorf("Measure should be deterministic: %+v != %+v", a, b)
	}
}

func TestOracleFunc(t *testing.T) {
	var o Oracle = OracleFunc(func(text string, f Font) geom.Size {
		return geom.Size{W: float64(len(text)), H: f.Size}
	})
	if got := o.Measure("abc", Font{Size: 5}); got != (geom.Size{W: 3, H: 5}) {
		t.Errorf("OracleFunc.Measure = %+v", got)
	}
}
