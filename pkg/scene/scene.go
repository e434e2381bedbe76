// Package scene defines the JSON document that describes one chart to label.
//
// A scene carries chart data that has already been projected to canvas
// coordinates, plus the container and the interaction state the layout is
// computed for. It is the boundary between a charting front end and the
// placement engine:
//
//	{
//	  "chart": "line",
//	  "container": {"x": 0, "y": 0, "width": 600, "height": 400},
//	  "font": {"size": 12},
//	  "interaction": {"hovered": ["de"]},
//	  "series": [
//	    {"group": "de", "text": "Germany", "points": [{"x": 0, "y": 80}, {"x": 560, "y": 120}]}
//	  ]
//	}
//
// Which data fields apply depends on the chart: points for scatter, series
// for line, axis for axis and bars (with marimekko settings) for marimekko.
package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/source"
	"github.com/matzehuels/labeler/pkg/errors"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

// Scene is one chart to label.
type Scene struct {
	Chart       source.Chart      `json:"chart"`
	Container   geom.Box          `json:"container"`
	Font        textmeasure.Font  `json:"font"`
	Gap         float64           `json:"gap,omitempty"`
	Interaction label.Interaction `json:"interaction"`

	Points    []source.Point  `json:"points,omitempty"`
	Series    []source.Series `json:"series,omitempty"`
	Axis      *Axis           `json:"axis,omitempty"`
	Bars      []source.Bar    `json:"bars,omitempty"`
	Marimekko *Marimekko      `json:"marimekko,omitempty"`
}

// Axis holds the ticks of an axis chart.
type Axis struct {
	ID          string             `json:"id,omitempty"`
	Orientation source.Orientation `json:"orientation"`
	Offset      float64            `json:"offset"`
	Ticks       []source.Tick      `json:"ticks"`
}

// Marimekko holds the label band settings of a marimekko chart. A nil Angle
// and a zero BandHeight take the configured defaults; an explicit angle of
// 0 draws the labels unrotated.
type Marimekko struct {
	Angle      *float64 `json:"angle,omitempty"`
	Baseline   float64  `json:"baseline"`
	BandHeight float64  `json:"band_height,omitempty"`
}

// Defaults fills scene values that were left out.
type Defaults struct {
	Font       textmeasure.Font
	Angle      float64
	BandHeight float64
}

// Decode reads a scene from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene")
	}
	return &s, nil
}

// Load reads a scene file.
func Load(path string) (*Scene, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes the scene as indented JSON.
func (s *Scene) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WithDefaults returns a copy of s with unset values taken from d.
func (s *Scene) WithDefaults(d Defaults) *Scene {
	out := *s
	if out.Font.Size <= 0 {
		out.Font.Size = d.Font.Size
	}
	if out.Font.Weight == 0 {
		out.Font.Weight = d.Font.Weight
	}
	if out.Font.Family == "" {
		out.Font.Family = d.Font.Family
	}
	if out.Chart == source.ChartMarimekko {
		m := Marimekko{}
		if s.Marimekko != nil {
			m = *s.Marimekko
		}
		if m.Angle == nil {
			angle := d.Angle
			m.Angle = &angle
		}
		if m.BandHeight == 0 {
			m.BandHeight = d.BandHeight
		}
		out.Marimekko = &m
	}
	return &out
}

// Validate checks the scene for structural errors. Geometry is not checked
// beyond the container: the engine tolerates malformed label geometry.
func (s *Scene) Validate() error {
	if !s.Chart.Valid() {
		return errors.New(errors.ErrCodeInvalidChart, "unknown chart %q (want one of %v)", s.Chart, source.Charts)
	}
	if !s.Container.Valid() || s.Container.W <= 0 || s.Container.H <= 0 {
		return errors.New(errors.ErrCodeInvalidScene, "container must have a finite, positive size")
	}
	if s.Font.Size < 0 || math.IsInf(s.Font.Size, 0) {
		return errors.New(errors.ErrCodeInvalidScene, "font size must be finite and non-negative")
	}

	if s.Chart != source.ChartScatter && len(s.Points) > 0 {
		return errors.New(errors.ErrCodeInvalidScene, "points are only used by scatter charts")
	}
	if s.Chart != source.ChartLine && len(s.Series) > 0 {
		return errors.New(errors.ErrCodeInvalidScene, "series are only used by line charts")
	}
	if s.Chart != source.ChartAxis && s.Axis != nil {
		return errors.New(errors.ErrCodeInvalidScene, "axis is only used by axis charts")
	}
	if s.Chart != source.ChartMarimekko && (len(s.Bars) > 0 || s.Marimekko != nil) {
		return errors.New(errors.ErrCodeInvalidScene, "bars are only used by marimekko charts")
	}

	switch s.Chart {
	case source.ChartScatter:
		return s.validatePoints()
	case source.ChartLine:
		return s.validateSeries()
	case source.ChartAxis:
		return s.validateAxis()
	case source.ChartMarimekko:
		return s.validateBars()
	}
	return nil
}

func (s *Scene) validatePoints() error {
	seen := make(map[string]bool, len(s.Points))
	for i, p := range s.Points {
		if err := errors.ValidateID(p.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "point %d", i)
		}
		if seen[p.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate point id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Kind != "" && p.Kind != label.KindStart && p.Kind != label.KindMid && p.Kind != label.KindEnd {
			return errors.New(errors.ErrCodeInvalidScene, "point %q: kind must be start, mid or end, got %q", p.ID, p.Kind)
		}
		if err := errors.ValidateColor(p.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "point %q", p.ID)
		}
	}
	return nil
}

func (s *Scene) validateSeries() error {
	seen := make(map[string]bool, len(s.Series))
	for i, sr := range s.Series {
		if err := errors.ValidateID(sr.Group); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "series %d", i)
		}
		if seen[sr.Group] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate series group %q", sr.Group)
		}
		seen[sr.Group] = true
		if err := errors.ValidateColor(sr.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "series %q", sr.Group)
		}
	}
	return nil
}

func (s *Scene) validateAxis() error {
	if s.Axis == nil {
		return errors.New(errors.ErrCodeInvalidScene, "axis chart needs an axis")
	}
	switch s.Axis.Orientation {
	case source.Horizontal, source.Vertical:
	default:
		return errors.New(errors.ErrCodeInvalidScene, "axis orientation must be %q or %q, got %q",
			source.Horizontal, source.Vertical, s.Axis.Orientation)
	}
	return nil
}

func (s *Scene) validateBars() error {
	seen := make(map[string]bool, len(s.Bars))
	for i, b := range s.Bars {
		if err := errors.ValidateID(b.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "bar %d", i)
		}
		if seen[b.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate bar id %q", b.ID)
		}
		seen[b.ID] = true
		if b.Width < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "bar %q has negative width", b.ID)
		}
		if err := errors.ValidateColor(b.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "bar %q", b.ID)
		}
	}
	if m := s.Marimekko; m != nil && m.BandHeight < 0 {
		return errors.New(errors.ErrCodeInvalidScene, "marimekko band height cannot be negative")
	}
	return nil
}

// Source returns the candidate source for a scatter, line or axis scene.
func (s *Scene) Source() (source.Source, error) {
	switch s.Chart {
	case source.ChartScatter:
		return source.Scatter{Points: s.Points, Font: s.Font, Gap: s.Gap}, nil
	case source.ChartLine:
		return source.LineEnd{Series: s.Series, Font: s.Font, Gap: s.Gap}, nil
	case source.ChartAxis:
		if s.Axis == nil {
			return nil, errors.New(errors.ErrCodeInvalidScene, "axis chart needs an axis")
		}
		return source.Axis{
			ID:          s.Axis.ID,
			Orientation: s.Axis.Orientation,
			Offset:      s.Axis.Offset,
			Ticks:       s.Axis.Ticks,
			Font:        s.Font,
			Gap:         s.Gap,
		}, nil
	case source.ChartMarimekko:
		return nil, errors.New(errors.ErrCodeUnsupported, "marimekko labels are spread, not placed")
	}
	return nil, errors.New(errors.ErrCodeInvalidChart, "unknown chart %q", s.Chart)
}

// MarimekkoSource returns the bar source of a marimekko scene.
func (s *Scene) MarimekkoSource() source.Marimekko {
	m := source.Marimekko{Bars: s.Bars, Font: s.Font, Angle: source.DefaultAngle}
	if s.Marimekko != nil {
		if s.Marimekko.Angle != nil {
			m.Angle = *s.Marimekko.Angle
		}
		m.Baseline = s.Marimekko.Baseline
		m.BandHeight = s.Marimekko.BandHeight
	}
	return m
}

// Groups returns the distinct group keys of the scene, in first-seen order.
// Interactive front ends cycle hover and focus through them.
func (s *Scene) Groups() []string {
	var out []string
	seen := map[string]bool{}
	add := func(g string) {
		if g != "" && !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	for _, p := range s.Points {
		if p.Group != "" {
			add(p.Group)
		} else {
			add(p.ID)
		}
	}
	for _, sr := range s.Series {
		add(sr.Group)
	}
	for _, b := range s.Bars {
		add(b.ID)
	}
	return out
}
