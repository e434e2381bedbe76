// Package textmeasure answers "how big is this string?" for the label
// placement engine.
//
// Two oracles are provided. [OpenType] measures with real glyph advances
// from the Go font family and is what the CLI and service use. [Heuristic]
// approximates width from a per-character ratio and needs no font data,
// which makes it the right choice for tests with hand-computed expectations.
package textmeasure

import (
	"strings"

	"github.com/matzehuels/labeler/pkg/core/geom"
)

// Font weights understood by the oracles.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// Font describes the text style a label is measured with.
type Font struct {
	Size   float64 `json:"size"`
	Weight int     `json:"weight,omitempty"`
	Family string  `json:"family,omitempty"`
}

// Bold reports whether the weight selects a bold face.
func (f Font) Bold() bool { return f.Weight >= 600 }

// Oracle returns the bounding size of text set in font f.
type Oracle interface {
	Measure(text string, f Font) geom.Size
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(text string, f Font) geom.Size

// Measure calls fn(text, f).
func (fn OracleFunc) Measure(text string, f Font) geom.Size { return fn(text, f) }

const (
	charWidthRatio  = 0.55 // average advance as a fraction of the font size
	boldWidthRatio  = 1.08
	lineHeightRatio = 1.2
)

// Heuristic estimates text bounds from character counts.
type Heuristic struct{}

// Measure returns an estimated size; multi-line text stacks lines.
func (Heuristic) Measure(text string, f Font) geom.Size {
	if text == "" || f.Size <= 0 {
		return geom.Size{}
	}
	lines := strings.Split(text, "\n")
	longest := 0
	for _, l := range lines {
		longest = max(longest, len([]rune(l)))
	}
	w := float64(longest) * f.Size * charWidthRatio
	if f.Bold() {
		w *= boldWidthRatio
	}
	return geom.Size{W: w, H: float64(len(lines)) * f.Size * lineHeightRatio}
}
