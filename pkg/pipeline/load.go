package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/pigeon/pkg/coords"
	"github.com/matzehuels/pigeon/pkg/fonts"
	"github.com/matzehuels/pigeon/pkg/graph"
	"github.com/matzehuels/pigeon/pkg/observability"
	"github.com/matzehuels/pigeon/pkg/silhouette"
)

// Inputs holds everything read from disk before layout starts.
type Inputs struct {
	Image  *silhouette.Image
	Graph  *graph.Graph
	Fonts  fonts.Pair
	Canvas coords.Canvas
}

// Close releases the font faces.
func (in *Inputs) Close() error {
	return in.Fonts.Close()
}

// LoadInputs reads the image, the graph and both fonts, and checks that the
// margin fits the image. All file errors surface here, before any layout work.
func (r *Runner) LoadInputs(ctx context.Context, opts Options) (*Inputs, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Graph)
	start := time.Now()

	in, err := r.loadInputs(opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, in.Graph.NodeCount(), in.Graph.EdgeCount(), time.Since(start), nil)
	return in, nil
}

func (r *Runner) loadInputs(opts Options) (*Inputs, error) {
	img, err := silhouette.Load(opts.Image)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	opts.Logger.Debug("read reference image", "path", opts.Image, "width", img.Width(), "height", img.Height())

	canvas := coords.Canvas{Width: img.Width(), Height: img.Height(), Margin: opts.Margin}
	if err := canvas.Validate(); err != nil {
		return nil, err
	}

	g, err := graph.Load(opts.Graph, graph.LoadOptions{
		Sample:   opts.Sample,
		Seed:     opts.Seed,
		UserOnly: opts.UserEdgesOnly,
		Labels:   opts.Labels,
	})
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	opts.Logger.Debug("read graph", "path", opts.Graph, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	faces, err := fonts.LoadPair(opts.FontLight, opts.FontBold, opts.FontSize)
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	return &Inputs{Image: img, Graph: g, Fonts: faces, Canvas: canvas}, nil
}
