package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/fonts"
	"github.com/matzehuels/labeler/pkg/layout"
)

const (
	defaultFontFamily = fonts.FallbackFontFamily
	defaultTextColor  = "#333333"
	connectorColor    = "#999999"
	hiddenBoxColor    = "#d62728"
	shownBoxColor     = "#2ca02c"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	debug      bool
	hidden     bool
	fontFamily string
	background string
	embedFont  bool
}

// WithDebug outlines every candidate box recorded in the layout.
func WithDebug() SVGOption { return func(r *svgRenderer) { r.debug = true } }

// WithHidden draws hidden labels at low opacity instead of omitting them.
func WithHidden() SVGOption { return func(r *svgRenderer) { r.hidden = true } }

// WithFontFamily sets the CSS font-family of every label.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithEmbeddedFont embeds the Go fonts as @font-face rules so the SVG
// renders with the glyphs the labels were measured with.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithBackground fills the container with a color before drawing.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// RenderSVG draws the labels of l as a standalone SVG document sized to the
// layout's container.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: defaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	c := l.Container
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.X, c.Y, c.W, c.H, c.W, c.H)
	if r.embedFont {
		renderFontFaces(&buf)
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			c.X, c.Y, c.W, c.H, escapeXML(r.background))
	}

	if r.debug {
		renderCandidates(&buf, l.Candidates)
	}
	for _, o := range l.Labels {
		if o.Visible && len(o.Connector) > 1 {
			renderConnector(&buf, o.Connector)
		}
	}
	for _, o := range l.Labels {
		if !o.Visible && !r.hidden {
			continue
		}
		r.renderLabel(&buf, o)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderLabel(buf *bytes.Buffer, o label.Output) {
	weight := ""
	if o.FontWeight != 0 {
		weight = fmt.Sprintf(` font-weight="%d"`, o.FontWeight)
	}
	rotate := ""
	if o.Rotate != 0 {
		rotate = fmt.Sprintf(` transform="rotate(%.1f %.1f %.1f)"`, o.Rotate, o.X, o.Y)
	}
	opacity := ""
	if !o.Visible {
		opacity = ` opacity="0.25"`
	}
	fmt.Fprintf(buf, `  <text id="label-%s" x="%.1f" y="%.1f" font-family="%s" font-size="%.1f"%s fill="%s" dominant-baseline="hanging"%s%s>`,
		escapeXML(o.ID), o.X, o.Y, escapeXML(r.fontFamily), o.FontSize, weight, escapeXML(colorOr(o.Color)), rotate, opacity)

	lines := strings.Split(o.Text, "\n")
	if len(lines) == 1 {
		buf.WriteString(escapeXML(o.Text))
	} else {
		lh := o.Height / float64(len(lines))
		for i, line := range lines {
			fmt.Fprintf(buf, `<tspan x="%.1f" y="%.1f">%s</tspan>`, o.X, o.Y+float64(i)*lh, escapeXML(line))
		}
	}
	buf.WriteString("</text>\n")
}

func renderConnector(buf *bytes.Buffer, pts []geom.Point) {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
	}
	fmt.Fprintf(buf, `  <polyline class="connector" points="%s" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
		sb.String(), connectorColor)
}

func renderCandidates(buf *bytes.Buffer, cands []layout.Candidate) {
	if len(cands) == 0 {
		return
	}
	buf.WriteString(`  <g class="debug">` + "\n")
	for _, c := range cands {
		stroke, dash := shownBoxColor, ""
		if c.Hidden {
			stroke, dash = hiddenBoxColor, ` stroke-dasharray="3,2"`
		}
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="0.5"%s><title>%s (%.0f)</title></rect>`+"\n",
			c.Bounds.X, c.Bounds.Y, c.Bounds.W, c.Bounds.H, stroke, dash, escapeXML(c.ID), c.Priority)
	}
	buf.WriteString("  </g>\n")
}

func colorOr(c string) string {
	if c == "" {
		return defaultTextColor
	}
	return c
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func renderFontFaces(buf *bytes.Buffer) {
	buf.WriteString("  <defs><style>\n")
	for _, bold := range []bool{false, true} {
		weight := "normal"
		if bold {
			weight = "bold"
		}
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; font-weight: %s; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, weight, fonts.TTFBase64(bold))
	}
	buf.WriteString("  </style></defs>\n")
}
