package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/pipeline"
)

// layoutCommand creates the layout command for placing the labels of a scene.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
		oracle  string
		ix      label.Interaction
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [scene.json]",
		Short: "Place the labels of a scene",
		Long: `Place the labels of a scene.

The layout command reads a scene file, scores and places its labels for the
given interaction state, and writes the result. JSON output (the default) is
the ordered label list a renderer consumes; SVG and PNG are previews.

Interaction flags replace the interaction stored in the scene file.

Results are cached, so re-running with an unchanged scene and state is free.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			opts.Formats = parseFormats(formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("hover") || flags.Changed("focus") || flags.Changed("select") {
				opts.Interaction = &ix
			}
			if oracle != "" {
				c.Config.Font.Oracle = oracle
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): json (default), svg, png, conflicts (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringSliceVar(&ix.Hovered, "hover", nil, "hovered group keys")
	cmd.Flags().StringSliceVar(&ix.Focused, "focus", nil, "focused group keys")
	cmd.Flags().StringSliceVar(&ix.Selected, "select", nil, "selected group keys")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "include candidate boxes and hidden labels")
	cmd.Flags().BoolVar(&opts.VisibleOnly, "visible-only", false, "omit hidden labels from JSON output")
	cmd.Flags().BoolVar(&opts.EmbedFont, "embed-font", false, "embed the Go fonts in SVG output")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&oracle, "oracle", "", "text oracle: opentype, heuristic (default: from config)")

	return cmd
}

// runLayout runs the pipeline over a scene file and writes every artifact.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	elapsed := stopwatch(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	elapsed("layout pipeline", "chart", result.Scene.Chart)
	logStages(c.Logger, result)

	paths := outputPaths(opts.Path, output, opts.Formats)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", paths[format], err)
		}
	}

	printSuccess("Layout complete")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.Labels, result.Stats.Visible, result.CacheInfo.LayoutHit)
	printHidden(result.Layout.Labels, 8)
	printNewline()
	printNextStep("Explore", appName+" explore "+opts.Path)

	return nil
}

// outputPaths maps each format to its output file. A single format with an
// explicit output uses it as is; otherwise the output (or input) path minus
// its extension is the base.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = input
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, f := range formats {
		switch f {
		case pipeline.FormatJSON:
			paths[f] = base + ".labels.json"
		case pipeline.FormatConflicts:
			paths[f] = base + ".conflicts.svg"
		default:
			paths[f] = base + "." + f
		}
	}
	return paths
}
