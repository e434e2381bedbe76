package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/labeler/pkg/layout"
	"github.com/matzehuels/labeler/pkg/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, buildSVGOptions(opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, buildPNGOptions(opts)...)
		case FormatConflicts:
			data, err = sink.RenderConflicts(ctx, l)
		case FormatJSON:
			data, err = sink.RenderJSON(l, buildJSONOptions(opts)...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Debug {
		out = append(out, sink.WithDebug(), sink.WithHidden())
	}
	if opts.EmbedFont {
		out = append(out, sink.WithEmbeddedFont())
	}
	return out
}

func buildPNGOptions(opts Options) []sink.PNGOption {
	out := []sink.PNGOption{sink.WithPNGScale(opts.Scale)}
	if opts.Debug {
		out = append(out, sink.WithPNGDebug(), sink.WithPNGHidden())
	}
	return out
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	var out []sink.JSONOption
	if opts.Debug {
		out = append(out, sink.WithJSONDebug())
	}
	if opts.VisibleOnly {
		out = append(out, sink.WithVisibleOnly())
	}
	return out
}
