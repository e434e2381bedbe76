// Package layout defines the serialized result of one layout pass.
//
// A Layout is what the pipeline caches, what the HTTP service returns and
// what the sinks render. Labels are in source order (bars in bar order for
// Marimekko charts). Candidates is optional debug data: the scored, clamped
// boxes every label competed with, including the hidden ones.
package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/source"
)

// Layout is the outcome of placing the labels of one scene.
type Layout struct {
	Chart       source.Chart      `json:"chart"`
	Container   geom.Box          `json:"container"`
	Interaction label.Interaction `json:"interaction"`
	Labels      []label.Output    `json:"labels"`
	Visible     int               `json:"visible"`

	Candidates []Candidate `json:"candidates,omitempty"`
}

// Candidate is the debug record of one collision-path candidate.
type Candidate struct {
	ID       string   `json:"id"`
	Bounds   geom.Box `json:"bounds"`
	Priority float64  `json:"priority"`
	Hidden   bool     `json:"hidden"`
}

// FromCandidates converts suppressed candidates into debug records.
func FromCandidates(cands []label.Candidate) []Candidate {
	out := make([]Candidate, len(cands))
	for i, c := range cands {
		out[i] = Candidate{ID: c.ID, Bounds: c.Bounds, Priority: c.Priority, Hidden: c.Hidden}
	}
	return out
}

// Hidden returns the labels that are not visible.
func (l Layout) Hidden() []label.Output {
	var out []label.Output
	for _, o := range l.Labels {
		if !o.Visible {
			out = append(out, o)
		}
	}
	return out
}

// Marshal serializes a Layout to indented JSON.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if !l.Chart.Valid() {
		return Layout{}, fmt.Errorf("layout has unknown chart %q", l.Chart)
	}
	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
