package textmeasure

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/fonts"
)

// measureDPI makes one point equal one canvas unit.
const measureDPI = 72

type faceKey struct {
	size float64
	bold bool
}

// OpenType measures text with the Go Regular and Go Bold fonts.
// Faces are created lazily per (size, weight) and reused. It is safe for
// concurrent use.
type OpenType struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewOpenType parses the embedded Go fonts.
func NewOpenType() (*OpenType, error) {
	regular, err := opentype.Parse(fonts.RegularTTF())
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(fonts.BoldTTF())
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &OpenType{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// Measure returns the advance width of the longest line and the combined
// line height of all lines. Font.Family is ignored: every family is measured
// with the Go fonts.
func (o *OpenType) Measure(text string, f Font) geom.Size {
	if text == "" || f.Size <= 0 {
		return geom.Size{}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	face, err := o.face(faceKey{size: f.Size, bold: f.Bold()})
	if err != nil {
		return Heuristic{}.Measure(text, f)
	}

	lines := strings.Split(text, "\n")
	var widest fixed.Int26_6
	for _, l := range lines {
		widest = max(widest, font.MeasureString(face, l))
	}
	m := face.Metrics()
	lineHeight := toFloat(m.Ascent + m.Descent)
	return geom.Size{W: toFloat(widest), H: float64(len(lines)) * lineHeight}
}

// Close releases all cached faces.
func (o *OpenType) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for k, face := range o.faces {
		_ = face.Close()
		delete(o.faces, k)
	}
	return nil
}

// face must be called with o.mu held.
func (o *OpenType) face(k faceKey) (font.Face, error) {
	if face, ok := o.faces[k]; ok {
		return face, nil
	}
	src := o.regular
	if k.bold {
		src = o.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    k.size,
		DPI:     measureDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	o.faces[k] = face
	return face, nil
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
