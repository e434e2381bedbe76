package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labeler/pkg/buildinfo"
	"github.com/matzehuels/labeler/pkg/cache"
	"github.com/matzehuels/labeler/pkg/config"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/core/place"
	"github.com/matzehuels/labeler/pkg/layout"
	"github.com/matzehuels/labeler/pkg/observability"
	"github.com/matzehuels/labeler/pkg/scene"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner keeps no pipeline results of its own; everything it remembers
// lives in Cache. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Config config.Config

	engine     *place.Engine
	oracle     textmeasure.Oracle
	configHash string
}

// engineSettings is the part of the config that changes layouts.
type engineSettings struct {
	Collision config.Collision `json:"collision"`
	Priority  config.Priority  `json:"priority"`
	Budget    config.Budget    `json:"budget"`
	Spacer    config.Spacer    `json:"spacer"`
	Font      config.Font      `json:"font"`
}

// NewRunner creates a runner for cfg.
// If keyer is nil, a DefaultKeyer scoped by build version is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, cfg config.Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if keyer == nil {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}

	oracle, err := NewOracle(cfg.Font.Oracle)
	if err != nil {
		return nil, err
	}
	hash, err := cache.HashJSON(engineSettings{
		Collision: cfg.Collision,
		Priority:  cfg.Priority,
		Budget:    cfg.Budget,
		Spacer:    cfg.Spacer,
		Font:      cfg.Font,
	})
	if err != nil {
		return nil, err
	}

	return &Runner{
		Cache:      c,
		Keyer:      keyer,
		Logger:     logger,
		Config:     cfg,
		engine:     place.New(oracle, cfg.EngineOptions()),
		oracle:     oracle,
		configHash: hash,
	}, nil
}

// NewOracle returns the text oracle with the given config name.
func NewOracle(name string) (textmeasure.Oracle, error) {
	switch name {
	case config.OracleHeuristic:
		return textmeasure.Heuristic{}, nil
	case config.OracleOpenType, "":
		return textmeasure.NewOpenType()
	}
	return nil, fmt.Errorf("unknown text oracle %q", name)
}

// Engine returns the placement engine built from the runner's config.
func (r *Runner) Engine() *place.Engine { return r.engine }

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	s, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Scene = s
	result.Stats.ParseTime = time.Since(parseStart)
	if result.SceneHash, err = SceneHash(s); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	opts.Logger.Debug("parsed scene",
		"chart", s.Chart,
		"inputs", inputs(s),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	ix := s.Interaction
	if opts.Interaction != nil {
		ix = *opts.Interaction
	}
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, s, ix, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Labels = len(l.Labels)
	result.Stats.Visible = l.Visible
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"labels", len(l.Labels),
		"visible", l.Visible,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse reads and validates the scene named by opts, applying the
// runner's configured defaults.
func (r *Runner) Parse(ctx context.Context, opts Options) (*scene.Scene, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, sourceName(opts))
	start := time.Now()

	s, err := Parse(opts, SceneDefaults(r.Config))

	chart := ""
	if s != nil {
		chart = string(s.Chart)
	}
	hooks.OnParseComplete(ctx, chart, time.Since(start), err)
	return s, err
}

// LayoutWithCacheInfo computes the layout of s for ix, memoized by the
// fingerprint of (scene data, normalized ix, engine config, oracle), and
// reports whether it came from the cache. Refresh skips the cache read but
// still stores the result.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, s *scene.Scene, ix label.Interaction, refresh bool) (layout.Layout, bool, error) {
	ix = ix.Normalized()

	sceneHash, err := SceneHash(s)
	if err != nil {
		return layout.Layout{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(sceneHash, cache.LayoutKeyOpts{
		Chart:      string(s.Chart),
		Hovered:    ix.Hovered,
		Focused:    ix.Focused,
		Selected:   ix.Selected,
		ConfigHash: r.configHash,
		Oracle:     r.Config.Font.Oracle,
	})

	// Try cache first (unless refresh requested)
	if !refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
		if err == nil && hit {
			if cached, err := layout.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(s.Chart), inputs(s))
	start := time.Now()

	l, err := ComputeLayout(r.engine, s, ix)

	hooks.OnLayoutComplete(ctx, string(s.Chart), l.Visible, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	// Cache the result. Layouts with non-finite coordinates have no JSON
	// form; they are served but recomputed every time.
	data, err := layout.Marshal(l)
	if err != nil {
		r.Logger.Warn("layout not cached", "key", cacheKey, "err", err)
		return l, false, nil
	}
	if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLLayout)); err != nil {
		r.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, s *scene.Scene, ix label.Interaction) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, s, ix, false)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutHash, err := cache.HashJSON(l)
	if err != nil {
		return nil, false, fmt.Errorf("layout cache key: %w", err)
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	rendered, err := Render(ctx, l, opts)

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLArtifact)); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner: the cache and, for the
// OpenType oracle, its font faces.
func (r *Runner) Close() error {
	if c, ok := r.oracle.(io.Closer); ok {
		_ = c.Close()
	}
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(fallback time.Duration) time.Duration {
	if d := r.Config.Cache.TTL.Duration; d > 0 {
		return d
	}
	return fallback
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
