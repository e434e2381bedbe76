// Package pipeline runs the parse → layout → render flow for labeler.
//
// The CLI, the HTTP service and the explorer all go through a [Runner], so
// scene defaults, validation, memoization and rendering behave the same
// everywhere.
//
// # Stages
//
//  1. Parse: decode a scene, fill defaults from the config and validate it
//  2. Layout: place (or spread) the labels for one interaction state
//  3. Render: turn the layout into JSON, SVG, PNG or a conflict graph
//
// # Memoization
//
// A layout is a pure function of the scene data, the normalized interaction
// state, the engine configuration and the text oracle. The layout stage
// fingerprints exactly those inputs and stores results through a
// cache.Cache; an unchanged fingerprint returns the stored layout instead of
// recomputing. Interaction state is fingerprinted separately from the scene,
// so hovering back and forth over the same groups hits the cache.
//
// # Usage
//
//	runner, err := pipeline.NewRunner(c, nil, logger, config.Default())
//	if err != nil {
//	    return err
//	}
//	defer runner.Close()
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "scene.json",
//	    Formats: []string{"svg"},
//	})
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labeler/pkg/cache"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/errors"
	"github.com/matzehuels/labeler/pkg/layout"
	"github.com/matzehuels/labeler/pkg/scene"
)

// Format constants for output formats. FormatConflicts is an SVG of the
// graph of which shown label suppressed which hidden one.
const (
	FormatSVG       = "svg"
	FormatPNG       = "png"
	FormatJSON      = "json"
	FormatConflicts = "conflicts"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatSVG, FormatPNG, FormatConflicts}

// DefaultScale is the PNG scale factor when Options.Scale is unset.
const DefaultScale = 2.0

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options describes one pipeline run. Exactly one scene input is used, in
// order of precedence: Scene, Data, Path.
type Options struct {
	// Parse options
	Path  string       `json:"-"`
	Data  []byte       `json:"-"`
	Scene *scene.Scene `json:"scene,omitempty"`

	// Layout options. A non-nil Interaction replaces the scene's own.
	Interaction *label.Interaction `json:"interaction,omitempty"`
	Refresh     bool               `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Debug       bool     `json:"debug,omitempty"`
	VisibleOnly bool     `json:"visible_only,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	EmbedFont   bool     `json:"embed_font,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the parsed scene with defaults applied.
	Scene *scene.Scene

	// SceneHash is the content hash of the scene data, without interaction.
	SceneHash string

	// Layout is the computed label layout.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Labels     int
	Visible    int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, svg, png, conflicts)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForParse checks that a scene input was given.
func (o *Options) ValidateForParse() error {
	if o.Scene == nil && len(o.Data) == 0 && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "scene, data or path is required")
	}
	o.setLogger()
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns cache key options for rendering one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Debug:       o.Debug,
		VisibleOnly: o.VisibleOnly,
		Scale:       o.Scale,
		EmbedFont:   o.EmbedFont && format == FormatSVG,
	}
}
