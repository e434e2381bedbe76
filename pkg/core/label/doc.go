// Package label defines the candidate and output records that flow through
// the label placement engine.
//
// # Lifecycle
//
// A [Candidate] is built fresh for every render pass by a chart-specific
// source, annotated by the engine stages (priority, clamped bounds, hidden
// flag) and discarded once the renderer has read the resulting [Output].
// Stages never mutate the slices they receive; each returns an annotated copy.
//
// # Subpackages
//
//   - priority: keep-priority scoring
//   - collide: pairwise collision suppression
//   - spacer: forward/backward 1D spacing for always-visible labels
//   - chunk: representative subset selection for dense axes
package label
