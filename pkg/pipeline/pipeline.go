// Package pipeline renders a graph into the shape of a silhouette.
//
// This package ties the stages together so the CLI only has to fill in
// [Options] and call [Runner.Execute].
//
// # Architecture
//
// A run goes through five stages:
//
//  1. Load: decode the silhouette image, the graph JSON, and the fonts
//  2. Place: read normalized points from the cache, or run the layout
//     engine and normalize its output
//  3. Classify: map points to pixels and test each against the silhouette
//  4. Draw: render labels (and optionally edges) into the output PNG
//  5. Store: write freshly computed points back to the cache
//
// Each stage is exported so it can be run on its own.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Algorithm = "kamada_kawai"
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Inside, "of", len(result.Labels), "labels are bold")
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pigeon/pkg/coords"
	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
	"github.com/matzehuels/pigeon/pkg/graph"
	"github.com/matzehuels/pigeon/pkg/layout"
	"github.com/matzehuels/pigeon/pkg/silhouette"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultAlgorithm = layout.DefaultAlgorithm
	DefaultImage     = "pigeon.png"
	DefaultGraph     = "graph/combined-billi.json"
	DefaultOutput    = "mm-billi-pigeon.png"

	// DefaultDPI is the print resolution the margin is derived from.
	DefaultDPI = 300

	// DefaultMargin keeps one inch free on every side at DefaultDPI.
	DefaultMargin = 1 * DefaultDPI

	// DefaultFontSize is the label size in pixels.
	DefaultFontSize = 13.0

	DefaultThreshold = silhouette.DefaultThreshold
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a run. Keys mirror the TOML or YAML
// config file accepted by [LoadConfig].
type Options struct {
	// Inputs and output
	Image  string `json:"image" toml:"image" yaml:"image"`
	Graph  string `json:"graph" toml:"graph" yaml:"graph"`
	Output string `json:"output" toml:"output" yaml:"output"`

	// Graph options
	Sample        int             `json:"sample,omitempty" toml:"sample" yaml:"sample"`
	Seed          uint64          `json:"seed,omitempty" toml:"seed" yaml:"seed"`
	Seeded        bool            `json:"seeded,omitempty" toml:"seeded" yaml:"seeded"` // use Seed even when it is zero
	UserEdgesOnly bool            `json:"user_edges_only,omitempty" toml:"user_edges_only" yaml:"user_edges_only"`
	Labels        graph.LabelRule `json:"labels" toml:"labels" yaml:"labels"`

	// Layout options
	Algorithm  string `json:"algorithm" toml:"algorithm" yaml:"algorithm"`
	Iterations int    `json:"iterations,omitempty" toml:"iterations" yaml:"iterations"`
	Refresh    bool   `json:"refresh,omitempty" toml:"refresh" yaml:"refresh"` // ignore the cache and recompute

	// Canvas and classification. Margin is used as given, including zero;
	// DefaultOptions sets it to DefaultMargin.
	DPI       int     `json:"dpi" toml:"dpi" yaml:"dpi"`
	Margin    int     `json:"margin" toml:"margin" yaml:"margin"`
	Threshold float64 `json:"threshold" toml:"threshold" yaml:"threshold"`

	// Render options
	FontSize  float64 `json:"font_size" toml:"font_size" yaml:"font_size"`
	FontLight string  `json:"font_light,omitempty" toml:"font_light" yaml:"font_light"`
	FontBold  string  `json:"font_bold,omitempty" toml:"font_bold" yaml:"font_bold"`
	DrawEdges bool    `json:"draw_edges,omitempty" toml:"draw_edges" yaml:"draw_edges"`

	// Runtime options (not serialized)
	Logger *log.Logger   `json:"-" toml:"-" yaml:"-"`
	Engine layout.Engine `json:"-" toml:"-" yaml:"-"` // overrides Algorithm lookup when set
}

// DefaultOptions returns the options of a plain `pigeon render` run.
func DefaultOptions() Options {
	o := Options{
		Margin: DefaultMargin,
		Labels: graph.DefaultLabelRule(),
	}
	o.SetDefaults()
	return o
}

// SetDefaults fills zero-valued fields. Margin is left alone.
func (o *Options) SetDefaults() {
	if o.Image == "" {
		o.Image = DefaultImage
	}
	if o.Graph == "" {
		o.Graph = DefaultGraph
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values that do not depend on the inputs.
// Canvas fit is checked once the image size is known.
func (o *Options) Validate() error {
	if o.Engine == nil {
		if _, err := layout.New(o.Algorithm, layout.Options{}); err != nil {
			return err
		}
	}
	if o.Margin < 0 {
		return pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput, "margin must not be negative, got %d", o.Margin)
	}
	if o.DPI <= 0 {
		return pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput, "dpi must be positive, got %d", o.DPI)
	}
	if o.FontSize <= 0 {
		return pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput, "font size must be positive, got %g", o.FontSize)
	}
	if o.Threshold <= 0 || o.Threshold > 1 {
		return pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput, "threshold must be in (0, 1], got %g", o.Threshold)
	}
	if o.Sample < 0 {
		return pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput, "sample must not be negative, got %d", o.Sample)
	}
	return nil
}

// AlgorithmName returns the name results are cached under.
func (o *Options) AlgorithmName() string {
	if o.Engine != nil {
		return o.Engine.Name()
	}
	return o.Algorithm
}

// =============================================================================
// Results
// =============================================================================

// Label is the final per-node record handed to the renderer.
type Label struct {
	Index  graph.NodeIndex
	Text   string
	Point  coords.Pixel
	Inside bool
}

// Placement holds everything known about node positions, indexed by
// graph.NodeIndex. All slices have one entry per node.
type Placement struct {
	Normalized []coords.Normalized
	Pixels     []coords.Pixel
	Inside     []bool

	Degenerate coords.Degenerate
	FromCache  bool
}

// Len returns the number of placed nodes.
func (p *Placement) Len() int { return len(p.Normalized) }

// Result contains the outputs of a pipeline run.
type Result struct {
	Output     string
	Labels     []Label
	Inside     int // labels drawn bold
	Seed       uint64
	CacheHit   bool
	Degenerate coords.Degenerate
	Stats      Stats
}

// Stats contains timing and size information.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	UserEdgeCount int
	Width         int
	Height        int
	DarkArea      int
	LoadTime      time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}
