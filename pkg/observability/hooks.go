// Package observability provides hooks for timing and tracing pipeline runs.
//
// Hooks keep the pipeline free of any particular metrics or tracing backend.
// The CLI registers a logging implementation at startup; tests register
// recorders to assert which stages ran.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, algorithm, nodeCount)
//	// ... compute layout ...
//	observability.Pipeline().OnLayoutComplete(ctx, algorithm, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the rendering pipeline.
type PipelineHooks interface {
	// Load events cover reading the image and the graph.
	OnLoadStart(ctx context.Context, graphPath string)
	OnLoadComplete(ctx context.Context, nodeCount, edgeCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, algorithm string, nodeCount int)
	OnLayoutComplete(ctx context.Context, algorithm string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, output string, labelCount int)
	OnRenderComplete(ctx context.Context, output string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from layout cache access.
type CacheHooks interface {
	// OnCacheHit records a usable cached layout.
	OnCacheHit(ctx context.Context, key string)

	// OnCacheMiss records a missing entry.
	OnCacheMiss(ctx context.Context, key string)

	// OnCacheStale records an entry that exists but does not fit the graph.
	OnCacheStale(ctx context.Context, key string, reason error)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, key string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                            {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)          {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)         {}
func (NoopCacheHooks) OnCacheStale(context.Context, string, error) {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)     {}

// PipelineFanout forwards every pipeline event to each hook in order.
type PipelineFanout []PipelineHooks

func (f PipelineFanout) OnLoadStart(ctx context.Context, graphPath string) {
	for _, h := range f {
		h.OnLoadStart(ctx, graphPath)
	}
}

func (f PipelineFanout) OnLoadComplete(ctx context.Context, nodeCount, edgeCount int, d time.Duration, err error) {
	for _, h := range f {
		h.OnLoadComplete(ctx, nodeCount, edgeCount, d, err)
	}
}

func (f PipelineFanout) OnLayoutStart(ctx context.Context, algorithm string, nodeCount int) {
	for _, h := range f {
		h.OnLayoutStart(ctx, algorithm, nodeCount)
	}
}

func (f PipelineFanout) OnLayoutComplete(ctx context.Context, algorithm string, d time.Duration, err error) {
	for _, h := range f {
		h.OnLayoutComplete(ctx, algorithm, d, err)
	}
}

func (f PipelineFanout) OnRenderStart(ctx context.Context, output string, labelCount int) {
	for _, h := range f {
		h.OnRenderStart(ctx, output, labelCount)
	}
}

func (f PipelineFanout) OnRenderComplete(ctx context.Context, output string, d time.Duration, err error) {
	for _, h := range f {
		h.OnRenderComplete(ctx, output, d, err)
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
