package label

import (
	"cmp"
	"slices"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

// Kind tells where along its series a label sits, or what chart element it
// annotates.
type Kind string

// Candidate kinds.
const (
	KindStart Kind = "start"
	KindMid   Kind = "mid"
	KindEnd   Kind = "end"
	KindTick  Kind = "tick"
	KindBar   Kind = "bar"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindStart, KindMid, KindEnd, KindTick, KindBar:
		return true
	}
	return false
}

// Candidate is a prospective text label.
type Candidate struct {
	ID       string           `json:"id"`
	Text     string           `json:"text"`
	Font     textmeasure.Font `json:"font"`
	Color    string           `json:"color,omitempty"`
	Bounds   geom.Box         `json:"bounds"`
	Anchor   geom.Point       `json:"anchor"`
	Priority float64          `json:"priority"`
	GroupKey string           `json:"group,omitempty"`
	Hidden   bool             `json:"hidden,omitempty"`
	Kind     Kind             `json:"kind"`

	// Value and Boundary describe tick labels: the data value the tick
	// marks and whether it is the first or last tick of its axis.
	Value    float64 `json:"value,omitempty"`
	Boundary bool    `json:"boundary,omitempty"`
}

// Clone returns a copy of cands.
func Clone(cands []Candidate) []Candidate { return slices.Clone(cands) }

// ByPriority returns the indices of cands ordered by descending priority.
// Ties are broken by ascending ID and then by original index, which makes
// the order total and reproducible.
func ByPriority(cands []Candidate) []int {
	idx := make([]int, len(cands))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		if c := cmp.Compare(cands[b].Priority, cands[a].Priority); c != 0 {
			return c
		}
		return cmp.Compare(cands[a].ID, cands[b].ID)
	})
	return idx
}

// Output is what the renderer draws for one label. Rotate is in degrees,
// clockwise about (X, Y).
type Output struct {
	ID         string       `json:"id"`
	Text       string       `json:"text"`
	X          float64      `json:"x"`
	Y          float64      `json:"y"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	FontSize   float64      `json:"font_size"`
	FontWeight int          `json:"font_weight,omitempty"`
	Color      string       `json:"color,omitempty"`
	Rotate     float64      `json:"rotate,omitempty"`
	Visible    bool         `json:"visible"`
	Connector  []geom.Point `json:"connector,omitempty"`
}

// ToOutput converts a candidate into its renderer record.
// X and Y are the top-left corner of the candidate's bounds.
func ToOutput(c Candidate) Output {
	return Output{
		ID:         c.ID,
		Text:       c.Text,
		X:          c.Bounds.X,
		Y:          c.Bounds.Y,
		Width:      c.Bounds.W,
		Height:     c.Bounds.H,
		FontSize:   c.Font.Size,
		FontWeight: c.Font.Weight,
		Color:      c.Color,
		Visible:    !c.Hidden,
	}
}

// Visible counts the outputs marked visible.
func Visible(outs []Output) int {
	n := 0
	for _, o := range outs {
		if o.Visible {
			n++
		}
	}
	return n
}
