// Package cli implements the labeler command-line interface.
//
// # Commands
//
//   - layout: place the labels of a scene file and write JSON, SVG or PNG
//   - serve: run the HTTP layout service
//   - explore: step hover, focus and selection through a scene interactively
//   - cache: inspect and clear the layout cache
//   - config: print the effective configuration or its path
//   - completion: generate shell completion scripts
//
// Every command reads the TOML config (--config, default
// $XDG_CONFIG_HOME/labeler/config.toml); flags override file values.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/labeler/pkg/buildinfo"
	"github.com/matzehuels/labeler/pkg/cache"
	"github.com/matzehuels/labeler/pkg/config"
	"github.com/matzehuels/labeler/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "labeler"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before every command runs.
	Config     config.Config
	ConfigPath string
}

// New creates a new CLI instance with a default logger and config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Labeler places chart labels without collisions",
		Long:         `Labeler decides where chart labels go and which of them to show, so that the labels that matter most stay readable when they compete for space.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: $XDG_CONFIG_HOME/labeler/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file. An explicit --config must exist; the
// default path may be missing.
func (c *CLI) loadConfig() error {
	if c.ConfigPath != "" {
		cfg, err := config.Load(c.ConfigPath)
		if err != nil {
			return err
		}
		c.Config = cfg
		return nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return nil
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner over the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r, err := pipeline.NewRunner(ch, nil, c.Logger, c.Config)
	if err != nil {
		ch.Close()
		return nil, err
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	ch, err := cache.Open(ctx, c.Config.CacheOptions())
	if err != nil {
		// A missing cache only costs recomputation.
		c.Logger.Warn("cache unavailable, continuing without", "backend", c.Config.Cache.Backend, "err", err)
		return cache.NewNullCache(), nil
	}
	return ch, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// stdout is where status output goes; tests replace it.
var stdout io.Writer = os.Stdout
