package sink

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/fonts"
	"github.com/matzehuels/labeler/pkg/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale  float64
	debug  bool
	hidden bool
}

// WithPNGScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithPNGScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGDebug outlines every candidate box recorded in the layout.
func WithPNGDebug() PNGOption { return func(r *pngRenderer) { r.debug = true } }

// WithPNGHidden draws hidden labels in a faded color.
func WithPNGHidden() PNGOption { return func(r *pngRenderer) { r.hidden = true } }

var (
	fontsOnce sync.Once
	fontsErr  error
	regular   *text.FontSource
	bold      *text.FontSource
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regular, fontsErr = text.NewFontSource(fonts.RegularTTF()); fontsErr != nil {
			return
		}
		bold, fontsErr = text.NewFontSource(fonts.BoldTTF())
	})
	return fontsErr
}

// RenderPNG rasterizes the layout onto a white canvas the size of its
// container. gg draws glyphs straight into the pixmap without the current
// transform, so rotated labels are set horizontally at their anchor.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	c := l.Container
	w := int(math.Ceil(c.W * r.scale))
	h := int(math.Ceil(c.H * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("container %vx%v has no area", c.W, c.H)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	// Shifting by the container origin lets every coordinate below stay in
	// layout space.
	px := func(x float64) float64 { return (x - c.X) * r.scale }
	py := func(y float64) float64 { return (y - c.Y) * r.scale }

	if r.debug {
		dc.SetLineWidth(1)
		for _, cand := range l.Candidates {
			if cand.Hidden {
				dc.SetHexColor(hiddenBoxColor)
			} else {
				dc.SetHexColor(shownBoxColor)
			}
			b := cand.Bounds
			dc.DrawRectangle(px(b.X), py(b.Y), b.W*r.scale, b.H*r.scale)
			if err := dc.Stroke(); err != nil {
				return nil, err
			}
		}
	}

	dc.SetHexColor(connectorColor)
	dc.SetLineWidth(r.scale)
	for _, o := range l.Labels {
		if !o.Visible || len(o.Connector) < 2 {
			continue
		}
		dc.MoveTo(px(o.Connector[0].X), py(o.Connector[0].Y))
		for _, p := range o.Connector[1:] {
			dc.LineTo(px(p.X), py(p.Y))
		}
		if err := dc.Stroke(); err != nil {
			return nil, err
		}
	}

	for _, o := range l.Labels {
		if !o.Visible && !r.hidden {
			continue
		}
		drawLabel(dc, o, px(o.X), py(o.Y), r.scale)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawLabel(dc *gg.Context, o label.Output, x, y, scale float64) {
	src := regular
	if o.FontWeight >= 600 {
		src = bold
	}
	size := o.FontSize * scale
	if size <= 0 {
		return
	}
	face := src.Face(size)
	dc.SetFont(face)

	switch {
	case !o.Visible:
		dc.SetRGBA(0.6, 0.6, 0.6, 0.5)
	case strings.HasPrefix(o.Color, "#"):
		dc.SetHexColor(o.Color)
	default:
		dc.SetHexColor(defaultTextColor)
	}

	ascent := face.Metrics().Ascent
	lines := strings.Split(o.Text, "\n")
	lh := o.Height * scale / float64(len(lines))
	for i, line := range lines {
		dc.DrawString(line, x, y+ascent+float64(i)*lh)
	}
}
