// Package cache memoizes layout passes and rendered artifacts.
//
// A layout is a pure function of its scene, interaction state and engine
// configuration, so its cache key is a fingerprint of exactly those inputs.
// Recomputing on a hit would yield the same bytes; the cache only saves
// the work.
//
// # Backends
//
//   - [NullCache]: never stores anything
//   - [FileCache]: JSON entries under a directory, for the CLI
//   - [MemoryCache]: sharded in-process LRU, for the explorer and server
//   - [RedisCache]: shared across processes, for server fleets
//   - [MongoCache]: shared and durable, for deployments that already run MongoDB
//
// # Keys
//
// A [Keyer] builds keys. [DefaultKeyer] hashes key options with SHA-256;
// [ScopedKeyer] prefixes another keyer, which separates engine versions
// that share one backend.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values by key.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero or less means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear drops every entry of c, if c supports it.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout pass over the scene with the
	// given content hash.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of a rendering of the layout with the
	// given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the layout inputs besides the scene data: the
// interaction state (normalized by the caller), the engine configuration
// and the text oracle.
type LayoutKeyOpts struct {
	Chart      string   `json:"chart"`
	Hovered    []string `json:"hovered,omitempty"`
	Focused    []string `json:"focused,omitempty"`
	Selected   []string `json:"selected,omitempty"`
	ConfigHash string   `json:"config_hash"`
	Oracle     string   `json:"oracle"`
}

// ArtifactKeyOpts holds the rendering inputs besides the layout.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Debug       bool    `json:"debug,omitempty"`
	VisibleOnly bool    `json:"visible_only,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	EmbedFont   bool    `json:"embed_font,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
