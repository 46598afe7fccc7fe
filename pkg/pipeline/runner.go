package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pigeon/pkg/cache"
	"github.com/matzehuels/pigeon/pkg/observability"
	"github.com/matzehuels/pigeon/pkg/silhouette"
)

// Runner encapsulates pipeline execution with layout caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute runs load → place → classify → draw → store.
// On failure no output file is left behind and the cache is not written.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.resolveSeed(&opts)

	result := &Result{Output: opts.Output, Seed: opts.Seed}

	// Stage 1: Load
	loadStart := time.Now()
	in, err := r.LoadInputs(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	classifier := silhouette.Classifier{Threshold: opts.Threshold}
	g := in.Graph
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.UserEdgeCount = g.UserEdgeCount()
	result.Stats.Width = in.Image.Width()
	result.Stats.Height = in.Image.Height()
	result.Stats.DarkArea = classifier.DarkArea(in.Image)

	r.Logger.Info("loaded inputs",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"image", fmt.Sprintf("%dx%d", in.Image.Width(), in.Image.Height()),
		"dark_area", result.Stats.DarkArea,
		"duration", result.Stats.LoadTime)

	// Stage 2: Place
	layoutStart := time.Now()
	placement, err := r.ComputePlacement(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheHit = placement.FromCache
	result.Degenerate = placement.Degenerate

	r.Logger.Info("computed placement",
		"algorithm", opts.AlgorithmName(),
		"cached", placement.FromCache,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Classify
	if err := Classify(placement, in.Canvas, in.Image, classifier); err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	result.Labels = Labels(g, placement)
	for _, inside := range placement.Inside {
		if inside {
			result.Inside++
		}
	}

	// Stage 4: Draw
	renderStart := time.Now()
	if err := r.Draw(ctx, in, result.Labels, opts); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered output",
		"path", opts.Output,
		"labels", len(result.Labels),
		"inside", result.Inside,
		"duration", result.Stats.RenderTime)

	// Stage 5: Store
	if !placement.FromCache {
		r.Store(ctx, opts, placement)
	}

	return result, nil
}

// Store writes freshly computed points to the cache. Failures are logged,
// not returned: the image has already been written at this point.
func (r *Runner) Store(ctx context.Context, opts Options, p *Placement) {
	key := cache.LayoutKey(opts.AlgorithmName())
	data, err := cache.EncodePoints(cache.Entries(p.Normalized))
	if err != nil {
		r.Logger.Warn("cannot encode layout for cache", "key", key, "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data); err != nil {
		r.Logger.Warn("cannot write layout cache", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
	r.Logger.Debug("stored layout", "key", key, "bytes", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// resolveSeed draws a time-based seed for unseeded runs and logs it so the
// run can be repeated with --seed.
func (r *Runner) resolveSeed(opts *Options) {
	if opts.Seeded || opts.Seed != 0 {
		return
	}
	opts.Seed = uint64(time.Now().UnixNano())
	r.Logger.Info("drew random seed", "seed", opts.Seed)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
