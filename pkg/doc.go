// Package pkg provides the core libraries for Pigeon silhouette renderings.
//
// # Overview
//
// Pigeon lays out a graph with a force-directed algorithm, stretches the
// layout over a reference image, and writes a PNG in which every node is a
// text label. Labels that land on the dark part of the image are set in bold,
// so the silhouette emerges from the type.
//
// # Architecture
//
// The data flow through a render:
//
//	graph JSON ──► [graph] ──► [layout] ──► [coords] ──► [silhouette] ──► [render]
//	                              ▲            │
//	                              └─ [cache] ◄─┘
//
// [pipeline] runs these stages in order and is the only package the CLI talks
// to for rendering.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil)
//	opts := pipeline.DefaultOptions()
//	opts.Graph = "graph/billi.json"
//	opts.Image = "pigeon.png"
//	result, err := runner.Execute(ctx, opts)
//
// # Main Packages
//
// [graph] - Loads the links JSON, optionally samples or filters it, and
// assigns dense vertex indices and display labels.
//
// [layout] - Layout engines keyed by algorithm name. Graphviz engines (fdp,
// neato, sfdp, ...) run in-process through go-graphviz; the eades engine is
// pure Go on gonum.
//
// [coords] - Min-max normalization into the unit square and the affine map
// onto the image canvas inside its margin.
//
// [silhouette] - Decodes the reference image and classifies pixels by their
// first channel.
//
// [fonts] - Light and bold label faces, embedded Go fonts by default.
//
// [render] - Draws labels and optional edges with gg and writes the PNG
// atomically.
//
// [cache] - Stores normalized layouts as preprocessed_<algorithm>.json.
//
// [convert] - Turns NDJSON statement dumps into graph JSON.
//
// [observability] - Hooks for load, layout, render, and cache events.
//
// [errors] - Error codes shared by every package.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/pigeon/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/pigeon/pkg/layout
// [coords]: https://pkg.go.dev/github.com/matzehuels/pigeon/pkg/coords
// [silhouette]: https://pkg.go.dev/github.com/matzehuels/pigeon/pkg/silhouette
// [fonts]: https://pkg.go.dev/github.com/matzehuels/pigeon/pkg/fonts
// [render]: https://pkg.go.dev/github.com/matzehuels/pigeon/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/pigeon/pkg/cache
// [convert]: https://pkg.go.dev/github.com/matzehuels/pigeon/pkg/convert
// [observability]: https://pkg.go.dev/github.com/matzehuels/pigeon/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/pigeon/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pigeon/pkg/pipeline
package pkg
