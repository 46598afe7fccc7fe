package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/pigeon/pkg/graph"
	"github.com/matzehuels/pigeon/pkg/observability"
	"github.com/matzehuels/pigeon/pkg/render"
)

// Draw renders labels, and edges when requested, to opts.Output.
func (r *Runner) Draw(ctx context.Context, in *Inputs, labels []Label, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Output, len(labels))
	start := time.Now()

	var lines []render.Line
	if opts.DrawEdges {
		lines = edgeLines(in.Graph, labels)
	}

	rd := render.New(render.WithFaces(in.Fonts.Light, in.Fonts.Bold))
	err := rd.RenderFile(opts.Output, in.Canvas.Width, in.Canvas.Height, renderLabels(labels), lines)
	hooks.OnRenderComplete(ctx, opts.Output, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func renderLabels(labels []Label) []render.Label {
	out := make([]render.Label, len(labels))
	for i, l := range labels {
		out[i] = render.Label{Text: l.Text, X: l.Point.X, Y: l.Point.Y, Bold: l.Inside}
	}
	return out
}

func edgeLines(g *graph.Graph, labels []Label) []render.Line {
	lines := make([]render.Line, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		a, b := labels[e.Source].Point, labels[e.Target].Point
		lines = append(lines, render.Line{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y})
	}
	return lines
}
