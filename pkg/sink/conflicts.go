package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/labeler/pkg/core/geom"
	"github.com/matzehuels/labeler/pkg/layout"
)

// ConflictDOT converts the candidates of l into a Graphviz DOT graph of who
// suppressed whom. Every candidate is a node; an edge runs from each shown
// candidate to every hidden candidate its box overlaps. Hidden candidates
// without an incoming edge lost to padding or the label budget rather than
// to a direct overlap.
//
// Layouts without candidates (Marimekko) yield an empty graph.
func ConflictDOT(l layout.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("digraph conflicts {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("\n")

	for _, c := range l.Candidates {
		attrs := []string{fmt.Sprintf("label=%q", fmt.Sprintf("%s\nprio %g", c.ID, c.Priority))}
		if c.Hidden {
			attrs = append(attrs, `style="rounded,filled,dashed"`, "fillcolor=\"#f7d4d4\"", "color=\""+hiddenBoxColor+"\"")
		} else {
			attrs = append(attrs, "fillcolor=\"#d4f0d4\"", "color=\""+shownBoxColor+"\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, shown := range l.Candidates {
		if shown.Hidden {
			continue
		}
		for _, hidden := range l.Candidates {
			if hidden.Hidden && geom.Overlaps(shown.Bounds, hidden.Bounds) {
				fmt.Fprintf(&buf, "  %q -> %q;\n", shown.ID, hidden.ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderConflicts lays out the conflict graph of l with Graphviz and returns
// it as SVG.
func RenderConflicts(ctx context.Context, l layout.Layout) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ConflictDOT(l)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
