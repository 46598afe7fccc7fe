package cache

import "errors"

// Sentinel errors for cached layouts.
var (
	// ErrStale is returned when a cached point set does not fit the graph
	// it is about to be applied to.
	ErrStale = errors.New("stale layout cache")

	// ErrCorrupt is returned when a cache entry cannot be decoded.
	ErrCorrupt = errors.New("corrupt layout cache")
)
