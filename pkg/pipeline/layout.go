package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/pigeon/pkg/cache"
	"github.com/matzehuels/pigeon/pkg/coords"
	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
	"github.com/matzehuels/pigeon/pkg/graph"
	"github.com/matzehuels/pigeon/pkg/layout"
	"github.com/matzehuels/pigeon/pkg/observability"
)

// ComputePlacement returns normalized points for every node of g.
//
// A cached point set for the algorithm is used when it fits g; the layout
// engine and normalization are skipped in that case. A cached set that does
// not fit is logged and ignored, and will be overwritten by [Runner.Store].
func (r *Runner) ComputePlacement(ctx context.Context, g *graph.Graph, opts Options) (*Placement, error) {
	key := cache.LayoutKey(opts.AlgorithmName())

	if !opts.Refresh {
		if points, ok := r.cachedPoints(ctx, key, g.NodeCount(), opts); ok {
			opts.Logger.Info("using cached layout", "key", key, "points", len(points))
			return &Placement{Normalized: points, FromCache: true}, nil
		}
	}

	engine, err := r.engine(opts)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, engine.Name(), g.NodeCount())
	start := time.Now()

	raw, err := engine.Compute(ctx, g.NodeCount(), layoutEdges(g))
	if err == nil && len(raw) != g.NodeCount() {
		err = pigeonerrors.New(pigeonerrors.ErrCodeInternal,
			"%s returned %d points for %d nodes", engine.Name(), len(raw), g.NodeCount())
	}
	hooks.OnLayoutComplete(ctx, engine.Name(), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	normalized, deg := coords.Normalize(raw)
	if deg.Any() {
		opts.Logger.Warn("layout collapsed on an axis, placing all nodes at its low edge",
			"code", pigeonerrors.ErrCodeDegenerateLayout,
			"x", deg.X,
			"y", deg.Y)
	}
	return &Placement{Normalized: normalized, Degenerate: deg}, nil
}

// cachedPoints loads and checks a cached point set. Any problem is a miss.
func (r *Runner) cachedPoints(ctx context.Context, key string, n int, opts Options) ([]coords.Normalized, bool) {
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cannot read layout cache", "key", key, "error", err)
		hooks.OnCacheMiss(ctx, key)
		return nil, false
	}
	if !hit {
		opts.Logger.Debug("layout cache miss", "key", key)
		hooks.OnCacheMiss(ctx, key)
		return nil, false
	}

	entries, err := cache.DecodePoints(data)
	var points []coords.Normalized
	if err == nil {
		points, err = cache.Points(entries, n)
	}
	if err != nil {
		opts.Logger.Warn("ignoring cached layout", "key", key, "reason", err)
		hooks.OnCacheStale(ctx, key, err)
		return nil, false
	}

	hooks.OnCacheHit(ctx, key)
	return points, true
}

func (r *Runner) engine(opts Options) (layout.Engine, error) {
	if opts.Engine != nil {
		return opts.Engine, nil
	}
	return layout.New(opts.Algorithm, layout.Options{Seed: opts.Seed, Iterations: opts.Iterations})
}

func layoutEdges(g *graph.Graph) []layout.Edge {
	edges := make([]layout.Edge, g.EdgeCount())
	for i, e := range g.Edges() {
		edges[i] = layout.Edge{From: int(e.Source), To: int(e.Target)}
	}
	return edges
}
