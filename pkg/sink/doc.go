// Package sink renders a computed [layout.Layout] into an output format.
//
// The placement engine only decides where labels go and which are shown;
// drawing belongs to whatever chart library hosts it. The sinks here exist
// so a layout can be inspected without one:
//
//   - SVG: labels as text elements, connectors as polylines
//   - JSON: the layout itself, optionally trimmed to visible labels
//   - PNG: a raster preview drawn with gogpu/gg
//   - Conflicts: a Graphviz graph of which shown label hid which
//
// In SVG, rotated labels (Marimekko bars) are rotated about their (X, Y)
// anchor; the PNG preview sets them horizontally at the same anchor.
// With [WithDebug], the SVG and PNG sinks also outline every candidate box,
// dashed red for hidden candidates, which makes collision decisions visible.
//
// Basic usage:
//
//	svg := sink.RenderSVG(l, sink.WithDebug())
//	png, err := sink.RenderPNG(l, sink.WithPNGScale(2))
package sink
