package cache

// ScopedKeyer wraps a Keyer with a prefix so separate dataset runs sharing
// one Redis instance get isolated namespaces.
//
// Example usage:
//
//	// Keys private to one dataset run
//	runKeyer := NewScopedKeyer(NewDefaultKeyer(), "run:3f2a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlacementKey generates a prefixed key for placement result caching.
func (k *ScopedKeyer) PlacementKey(configHash string) string {
	return k.prefix + k.inner.PlacementKey(configHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(placementHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(placementHash, opts)
}
