// Package config loads labeler settings from a TOML file.
//
// Every tuned constant of the placement engine lives here with its default,
// so a deployment can adjust paddings, boosts and budgets without a
// rebuild:
//
//	[collision]
//	loose_pad = 6.0
//	strict_pad = -6.0
//	tick_pad = -4.0
//
//	[budget]
//	divisor = 3.0
//	max_labels = 20
//
//	[cache]
//	backend = "file"
//	ttl = "24h"
//
// Missing keys keep their defaults. Command-line flags override file values.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/labeler/pkg/cache"
	"github.com/matzehuels/labeler/pkg/core/label/chunk"
	"github.com/matzehuels/labeler/pkg/core/label/collide"
	"github.com/matzehuels/labeler/pkg/core/label/priority"
	"github.com/matzehuels/labeler/pkg/core/place"
	"github.com/matzehuels/labeler/pkg/core/source"
	"github.com/matzehuels/labeler/pkg/errors"
)

// Text bounds oracles.
const (
	OracleOpenType  = "opentype"
	OracleHeuristic = "heuristic"
)

// Cache backends.
const (
	CacheNull   = cache.BackendNull
	CacheFile   = cache.BackendFile
	CacheMemory = cache.BackendMemory
	CacheRedis  = cache.BackendRedis
	CacheMongo  = cache.BackendMongo
)

// CacheBackends lists the supported cache backends.
var CacheBackends = []string{CacheNull, CacheFile, CacheMemory, CacheRedis, CacheMongo}

// Config is the complete labeler configuration.
type Config struct {
	Collision Collision `toml:"collision"`
	Priority  Priority  `toml:"priority"`
	Budget    Budget    `toml:"budget"`
	Spacer    Spacer    `toml:"spacer"`
	Font      Font      `toml:"font"`
	Cache     Cache     `toml:"cache"`
	Server    Server    `toml:"server"`
}

// Collision holds the collision-test insets.
type Collision struct {
	LoosePad  float64 `toml:"loose_pad"`
	StrictPad float64 `toml:"strict_pad"`
	TickPad   float64 `toml:"tick_pad"`
}

// Priority holds the scorer boosts.
type Priority struct {
	Hover    float64 `toml:"hover"`
	Focus    float64 `toml:"focus"`
	End      float64 `toml:"end"`
	Boundary float64 `toml:"boundary"`
	Whole    float64 `toml:"whole"`
}

// Budget sizes the Marimekko label budget.
type Budget struct {
	Divisor      float64 `toml:"divisor"`
	MaxLabels    int     `toml:"max_labels"`
	LabelPadding float64 `toml:"label_padding"`
}

// Spacer holds defaults for Marimekko scenes that leave them out.
type Spacer struct {
	Angle      float64 `toml:"angle"`
	BandHeight float64 `toml:"band_height"`
}

// Font holds default text settings and the oracle that measures text.
type Font struct {
	Size   float64 `toml:"size"`
	Weight int     `toml:"weight"`
	Oracle string  `toml:"oracle"`
}

// Cache selects and configures the layout cache.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	Capacity      int      `toml:"capacity"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// Server configures the HTTP layout service.
type Server struct {
	Addr         string   `toml:"addr"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	Timeout      Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string ("24h", "90s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Collision: Collision{
			LoosePad:  collide.LoosePad,
			StrictPad: collide.StrictPad,
			TickPad:   collide.TickPad,
		},
		Priority: Priority{
			Hover:    priority.HoverBoost,
			Focus:    priority.FocusBoost,
			End:      priority.EndBoost,
			Boundary: priority.BoundaryBoost,
			Whole:    priority.WholeBoost,
		},
		Budget: Budget{
			Divisor:      chunk.DefaultDivisor,
			MaxLabels:    chunk.DefaultMaxLabels,
			LabelPadding: place.DefaultLabelPadding,
		},
		Spacer: Spacer{
			Angle:      source.DefaultAngle,
			BandHeight: DefaultBandHeight,
		},
		Font: Font{
			Size:   DefaultFontSize,
			Weight: 400,
			Oracle: OracleOpenType,
		},
		Cache: Cache{
			Backend:  CacheFile,
			TTL:      Duration{24 * time.Hour},
			Capacity: DefaultCacheCapacity,
		},
		Server: Server{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
			Timeout:      Duration{30 * time.Second},
		},
	}
}

// Defaults for values without an engine counterpart.
const (
	DefaultFontSize      = 12.0
	DefaultBandHeight    = 24.0
	DefaultCacheCapacity = 1024
	DefaultAddr          = ":8080"
	DefaultMaxBodyBytes  = 8 << 20
)

// DefaultPath returns $XDG_CONFIG_HOME/labeler/config.toml, falling back
// to the user config directory of the platform.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "labeler", "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "labeler", "config.toml"), nil
}

// Load reads the TOML file at path over the defaults and validates the
// result.
func Load(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes TOML data over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if c.Budget.Divisor <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "budget.divisor must be positive, got %v", c.Budget.Divisor)
	}
	if c.Budget.MaxLabels <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "budget.max_labels must be positive, got %d", c.Budget.MaxLabels)
	}
	if c.Budget.LabelPadding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "budget.label_padding cannot be negative")
	}
	if c.Font.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font.size must be positive, got %v", c.Font.Size)
	}
	if c.Font.Oracle != OracleOpenType && c.Font.Oracle != OracleHeuristic {
		return errors.New(errors.ErrCodeInvalidConfig, "font.oracle must be %q or %q, got %q", OracleOpenType, OracleHeuristic, c.Font.Oracle)
	}
	if c.Spacer.BandHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "spacer.band_height cannot be negative")
	}
	if !slices.Contains(CacheBackends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of %v, got %q", CacheBackends, c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if c.Cache.Backend == CacheMemory && c.Cache.Capacity <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.capacity must be positive for the memory backend")
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.Backend == CacheMongo && c.Cache.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.mongo_uri is required for the mongo backend")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}

// CacheOptions converts the cache settings into cache.Options.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		Capacity: c.Cache.Capacity,
		Redis: cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
		Mongo: cache.MongoOptions{
			URI:      c.Cache.MongoURI,
			Database: c.Cache.MongoDatabase,
		},
	}
}

// EngineOptions converts the engine settings into place.Options.
func (c Config) EngineOptions() place.Options {
	return place.Options{
		Scorer:       priority.Default{Hover: c.Priority.Hover, Focus: c.Priority.Focus, End: c.Priority.End},
		TickScorer:   priority.Tick{Boundary: c.Priority.Boundary, Whole: c.Priority.Whole},
		LoosePad:     c.Collision.LoosePad,
		StrictPad:    c.Collision.StrictPad,
		TickPad:      c.Collision.TickPad,
		Budget:       chunk.BudgetOptions{Divisor: c.Budget.Divisor, MaxLabels: c.Budget.MaxLabels},
		LabelPadding: c.Budget.LabelPadding,
	}
}
