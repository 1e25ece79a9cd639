// Package cache stores rendered symbol artifacts keyed by component and
// render options.
//
// Rendering is deterministic: the same component drawn with the same style
// and output options always produces the same bytes. The cache exploits this
// so that re-running symbolator over an unchanged source tree, or serving
// repeated HTTP requests, skips layout and rasterization.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for several `symbolator serve` replicas
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// Keys are built by a [Keyer] from a component hash and [ArtifactKeyOpts].
// [ScopedKeyer] prefixes keys so that incompatible releases never share
// entries:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1.2.0:")
//	key := keyer.ArtifactKey(cache.HashJSON(comp), cache.ArtifactKeyOpts{Format: "svg"})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of one component.
	ArtifactKey(componentHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Scale       float64 `json:"scale,omitempty"`
	Transparent bool    `json:"transparent,omitempty"`
	EmbedFonts  bool    `json:"embed_fonts,omitempty"`
	Background  string  `json:"background,omitempty"`
	Title       bool    `json:"title,omitempty"`
	NoType      bool    `json:"no_type,omitempty"`
	// StyleHash is the hash of the layout style, fonts included.
	StyleHash string `json:"style,omitempty"`
}

// DefaultKeyer is the unprefixed [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the hash and options.
func (DefaultKeyer) ArtifactKey(componentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", componentHash, opts)
}
