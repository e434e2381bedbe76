// Package pkg provides the core libraries for labeler, a chart label
// placement engine.
//
// # Overview
//
// Labeler decides where chart labels go and which of them to show. Every
// candidate label is scored against the current interaction state (hover,
// focus, selection), and a greedy pass keeps the highest-priority labels
// whose padded boxes do not collide. The pkg directory is organized into:
//
//  1. [core] - Domain logic (geometry, label scoring, collision, placement)
//  2. [scene] and [layout] - The JSON documents going in and coming out
//  3. [pipeline] - Orchestration (parse → layout → render) with caching
//  4. [sink] - JSON, SVG and PNG output
//  5. [server] - The HTTP layout service
//
// # Architecture
//
// The typical data flow through labeler:
//
//	Scene JSON (projected chart data + interaction)
//	         ↓
//	    [core/source] package (candidate labels per chart type)
//	         ↓
//	    [core/label] packages (priority, spacing, collision padding)
//	         ↓
//	    [core/place] package (budgeted greedy placement)
//	         ↓
//	    [layout] package → JSON/SVG/PNG output
//
// Text extents come from [textmeasure]; cached results live in [cache],
// keyed by the scene hash, interaction and engine configuration.
//
// # Quick Start
//
//	runner, err := pipeline.NewRunner(cache.NewMemoryCache(256), nil, logger, config.Default())
//	if err != nil {
//	    return err
//	}
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "line.json",
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// [core]: https://pkg.go.dev/github.com/matzehuels/labeler/pkg/core
// [scene]: https://pkg.go.dev/github.com/matzehuels/labeler/pkg/scene
// [layout]: https://pkg.go.dev/github.com/matzehuels/labeler/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/labeler/pkg/pipeline
// [sink]: https://pkg.go.dev/github.com/matzehuels/labeler/pkg/sink
// [server]: https://pkg.go.dev/github.com/matzehuels/labeler/pkg/server
// [textmeasure]: https://pkg.go.dev/github.com/matzehuels/labeler/pkg/textmeasure
// [cache]: https://pkg.go.dev/github.com/matzehuels/labeler/pkg/cache
//
// [core/source]: https://pkg.go.dev/github.com/matzehuels/labeler/pkg/core/source
// [core/label]: https://pkg.go.dev/github.com/matzehuels/labeler/pkg/core/label
// [core/place]: https://pkg.go.dev/github.com/matzehuels/labeler/pkg/core/place
package pkg
