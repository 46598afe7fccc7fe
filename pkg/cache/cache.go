// Package cache stores normalized layouts between runs.
//
// A layout is cached under a key derived from the algorithm name. The file
// backend writes one JSON document per key, holding the normalized point
// set as an array of [index, x, y] triples:
//
//	[[0, 0.0, 0.5], [1, 1.0, 0.25], ...]
//
// A hit lets the pipeline skip the layout engine entirely. Entries are
// checked with [Check] before use, and a set that does not fit the current
// graph is reported as stale.
package cache

import "context"

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the stored value. A missing key is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache stores nothing; every Get is a miss. It backs --no-cache.
type NullCache struct{}

// NewNullCache returns a cache that never hits.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte) error         { return nil }
func (NullCache) Delete(context.Context, string) error              { return nil }
func (NullCache) Close() error                                      { return nil }
