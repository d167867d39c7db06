// Package cache provides content-addressed caching for generation results.
//
// Placement output is a pure function of the resolved configuration, so a
// config hash fully identifies a placement result; the same holds for
// rendered artifacts keyed by placement hash plus render options. Backends:
// files on disk for CLI usage, Redis for the shared HTTP service, and a
// null cache for tests and --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Cache is the storage backend interface.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Entry lifetimes. Placement results are pure functions of their key, so
// they never go stale; artifacts get a TTL to bound storage growth.
const (
	TTLPlacement = time.Duration(0)
	TTLArtifact  = 7 * 24 * time.Hour
)

// KeyVersion is baked into every generated key. Bump it when the placement
// algorithm or artifact encoding changes in a way that invalidates old
// entries.
const KeyVersion = "v1"

// ArtifactKeyOpts captures the render options that make artifacts distinct
// for the same placement result.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	PixelsPerMM float64 `json:"pixels_per_mm,omitempty"`
	Labels      bool    `json:"labels,omitempty"`
	Nets        bool    `json:"nets,omitempty"`
}

// Keyer generates cache keys for the two cacheable stages.
type Keyer interface {
	// PlacementKey keys a placement result by its resolved-config hash.
	PlacementKey(configHash string) string

	// ArtifactKey keys a rendered artifact by placement hash and options.
	ArtifactKey(placementHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct {
	version string
}

// NewDefaultKeyer creates a keyer using the current KeyVersion.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{version: KeyVersion}
}

// PlacementKey generates a key for placement result caching.
func (k *DefaultKeyer) PlacementKey(configHash string) string {
	return hashKey("placement:"+k.version, configHash)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(placementHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+k.version, placementHash, opts)
}
