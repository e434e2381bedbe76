package label

import "slices"

// Highlight is the interaction class of a group.
type Highlight int

// Highlight classes, from strongest to weakest.
const (
	Idle Highlight = iota
	Focused
	Hovered
)

// String returns the class name.
func (h Highlight) String() string {
	switch h {
	case Hovered:
		return "hovered"
	case Focused:
		return "focused"
	}
	return "idle"
}

// Interaction is the pointer and selection state a layout pass is computed
// for. Each field lists group keys.
type Interaction struct {
	Hovered  []string `json:"hovered,omitempty"`
	Focused  []string `json:"focused,omitempty"`
	Selected []string `json:"selected,omitempty"`
}

// IsHovered reports whether group is under the pointer.
func (ix Interaction) IsHovered(group string) bool { return slices.Contains(ix.Hovered, group) }

// IsFocused reports whether group is focus-selected.
func (ix Interaction) IsFocused(group string) bool { return slices.Contains(ix.Focused, group) }

// IsSelected reports whether group was picked by the user.
func (ix Interaction) IsSelected(group string) bool { return slices.Contains(ix.Selected, group) }

// Class returns the strongest highlight class group belongs to.
func (ix Interaction) Class(group string) Highlight {
	switch {
	case ix.IsHovered(group):
		return Hovered
	case ix.IsFocused(group):
		return Focused
	}
	return Idle
}

// Normalized returns a copy with every list sorted and de-duplicated, so
// equal interaction states compare and hash equal.
func (ix Interaction) Normalized() Interaction {
	norm := func(s []string) []string {
		if len(s) == 0 {
			return nil
		}
		out := slices.Clone(s)
		slices.Sort(out)
		return slices.Compact(out)
	}
	return Interaction{
		Hovered:  norm(ix.Hovered),
		Focused:  norm(ix.Focused),
		Selected: norm(ix.Selected),
	}
}
