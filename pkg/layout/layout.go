// Package layout computes 2D positions for graph vertices.
//
// The force-directed placement itself is delegated to external libraries;
// this package only adapts them to one capability, [Engine], selected by name:
//
//	engine, err := layout.New("fdp", layout.Options{Seed: 42})
//	points, err := engine.Compute(ctx, nodeCount, edges)
//
// Points are index-aligned with vertex numbers: points[i] is the position of
// vertex i. Vertices are numbered 0..n-1 and edges refer to them by number.
//
// # Engines
//
// Graphviz engines (via github.com/goccy/go-graphviz): fdp, neato, sfdp,
// circo, twopi, dot, osage. The in-process Eades spring embedder from
// gonum.org/v1/gonum/graph/layout is available as "eades".
//
// igraph-style names are accepted as aliases, e.g. "fruchterman_reingold"
// runs fdp and "kamada_kawai" runs neato. See [Names] for the full list.
package layout

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

// DefaultAlgorithm is the algorithm used when none is configured.
const DefaultAlgorithm = "fruchterman_reingold"

// Point is a raw layout coordinate in engine units.
type Point = r2.Vec

// Edge connects vertex From to vertex To.
type Edge struct {
	From, To int
}

// Options tunes engines that accept them.
type Options struct {
	// Seed makes stochastic engines reproducible.
	Seed uint64

	// Iterations bounds iterative engines (eades). Zero uses the engine default.
	Iterations int
}

// Engine computes one position per vertex.
type Engine interface {
	// Name returns the algorithm name the engine was created with.
	Name() string

	// Compute returns n points for vertices 0..n-1.
	Compute(ctx context.Context, n int, edges []Edge) ([]Point, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc struct {
	Algorithm string
	Fn        func(ctx context.Context, n int, edges []Edge) ([]Point, error)
}

// Name returns f.Algorithm.
func (f EngineFunc) Name() string { return f.Algorithm }

// Compute calls f.Fn.
func (f EngineFunc) Compute(ctx context.Context, n int, edges []Edge) ([]Point, error) {
	return f.Fn(ctx, n, edges)
}

type factory func(name string, opts Options) Engine

var engines = map[string]factory{
	"fdp":   newGraphviz,
	"neato": newGraphviz,
	"sfdp":  newGraphviz,
	"circo": newGraphviz,
	"twopi": newGraphviz,
	"dot":   newGraphviz,
	"osage": newGraphviz,
	"eades": newEades,
}

// aliases maps igraph layout names to the closest available engine.
var aliases = map[string]string{
	"fruchterman_reingold":      "fdp",
	"grid_fruchterman_reingold": "fdp",
	"kamada_kawai":              "neato",
	"drl":                       "sfdp",
	"large_graph":               "sfdp",
	"circle":                    "circo",
	"star":                      "twopi",
	"reingold_tilford":          "dot",
	"grid":                      "osage",
}

// New returns the engine registered under name (or its alias).
// Unknown names fail with UNSUPPORTED_ALGORITHM.
func New(name string, opts Options) (Engine, error) {
	canonical := Canonical(name)
	f, ok := engines[canonical]
	if !ok {
		return nil, pigeonerrors.New(pigeonerrors.ErrCodeUnsupportedAlgorithm, "unknown layout algorithm %q", name)
	}
	return f(name, opts), nil
}

// Canonical resolves aliases. Unknown names are returned unchanged.
func Canonical(name string) string {
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

// Supported reports whether name (or its alias) has an engine.
func Supported(name string) bool {
	_, ok := engines[Canonical(name)]
	return ok
}

// Names returns every accepted algorithm name, engines and aliases, sorted.
func Names() []string {
	names := slices.Collect(maps.Keys(engines))
	names = append(names, slices.Collect(maps.Keys(aliases))...)
	slices.Sort(names)
	return names
}

// Aliases returns the alias table as "alias -> engine" lines, sorted by alias.
func Aliases() []string {
	out := make([]string, 0, len(aliases))
	for _, a := range slices.Sorted(maps.Keys(aliases)) {
		out = append(out, fmt.Sprintf("%s -> %s", a, aliases[a]))
	}
	return out
}

// checkEdges rejects edges that reference vertices outside 0..n-1.
func checkEdges(n int, edges []Edge) error {
	for i, e := range edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput,
				"edge %d (%d -> %d) references a vertex outside 0..%d", i, e.From, e.To, n-1)
		}
	}
	return nil
}

// trivial handles graphs that need no engine: nothing to place, or a single
// vertex at the origin.
func trivial(n int) ([]Point, bool) {
	switch n {
	case 0:
		return []Point{}, true
	case 1:
		return []Point{{}}, true
	}
	return nil, false
}
