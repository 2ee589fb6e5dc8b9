// Package cache stores rendered diagrams so that re-running a map whose DOT
// text has not changed skips the Graphviz layout.
//
// Keys are derived from the SHA-256 of the DOT text and the output format, so
// any change to nodes, edges, styles or rankdir produces a new key. Entries
// carry an expiry; expired or unreadable entries are treated as misses.
//
// [FileCache] is used by the CLI. [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered diagram stays cached.
const TTLArtifact = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the cached value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that affect an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns the key of a diagram rendered from the DOT text whose
// [Hash] is dotHash.
func (DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts)
}
