package layout

import (
	"context"
	"math/rand/v2"

	gonumlayout "gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
)

const defaultEadesUpdates = 30

// eadesEngine runs gonum's Eades spring embedder in-process.
type eadesEngine struct {
	name string
	opts Options
}

func newEades(name string, opts Options) Engine {
	return &eadesEngine{name: name, opts: opts}
}

func (e *eadesEngine) Name() string { return e.name }

func (e *eadesEngine) Compute(ctx context.Context, n int, edges []Edge) ([]Point, error) {
	if err := checkEdges(n, edges); err != nil {
		return nil, err
	}
	if pts, ok := trivial(n); ok {
		return pts, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for _, edge := range edges {
		// simple graphs reject self loops and parallel edges
		if edge.From == edge.To || g.HasEdgeBetween(int64(edge.From), int64(edge.To)) {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(edge.From), simple.Node(edge.To)))
	}

	updates := e.opts.Iterations
	if updates <= 0 {
		updates = defaultEadesUpdates
	}
	eades := gonumlayout.EadesR2{
		Repulsion: 1,
		Rate:      0.05,
		Updates:   updates,
		Theta:     0.2,
		Src:       rand.NewPCG(e.opts.Seed, e.opts.Seed),
	}
	optimizer := gonumlayout.NewOptimizerR2(g, eades.Update)
	for optimizer.Update() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	points := make([]Point, n)
	for i := range points {
		points[i] = optimizer.Coord2(int64(i))
	}
	return points, nil
}
