package sink

import (
	"encoding/json"

	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	visibleOnly bool
	debug       bool
}

// WithVisibleOnly drops hidden labels from the output.
func WithVisibleOnly() JSONOption { return func(r *jsonRenderer) { r.visibleOnly = true } }

// WithJSONDebug keeps the candidate boxes recorded in the layout.
func WithJSONDebug() JSONOption { return func(r *jsonRenderer) { r.debug = true } }

// RenderJSON exports the layout as a pretty-printed JSON document readable
// by [layout.Unmarshal]. Candidate boxes are stripped unless [WithJSONDebug]
// is given. It does not modify l.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := l
	if !r.debug {
		out.Candidates = nil
	}
	if r.visibleOnly {
		out.Labels = make([]label.Output, 0, l.Visible)
		for _, o := range l.Labels {
			if o.Visible {
				out.Labels = append(out.Labels, o)
			}
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
