package layout

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

// graphvizEngine runs one of the Graphviz layout programs and reads node
// positions back from the "plain" output format.
type graphvizEngine struct {
	name   string
	layout graphviz.Layout
	opts   Options
}

func newGraphviz(name string, opts Options) Engine {
	return &graphvizEngine{
		name:   name,
		layout: graphviz.Layout(Canonical(name)),
		opts:   opts,
	}
}

func (e *graphvizEngine) Name() string { return e.name }

func (e *graphvizEngine) Compute(ctx context.Context, n int, edges []Edge) ([]Point, error) {
	if err := checkEdges(n, edges); err != nil {
		return nil, err
	}
	if pts, ok := trivial(n); ok {
		return pts, nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(n, edges, e.opts)))
	if err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	gv.SetLayout(e.layout)

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.Format("plain"), &buf); err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "%s layout", e.layout)
	}
	return parsePlain(buf.Bytes(), n)
}

// ToDOT writes an undirected graph with vertices n0..n{n-1}. Vertices are
// points so label sizes do not influence the placement.
func ToDOT(n int, edges []Edge, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  node [shape=point, label=\"\", width=0.05];\n")
	buf.WriteString("  splines=false;\n")
	fmt.Fprintf(&buf, "  start=%d;\n", opts.Seed%math.MaxInt32)
	buf.WriteString("\n")

	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "  n%d;\n", i)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// parsePlain extracts "node <name> <x> <y> ..." records. Every vertex must be
// present exactly once.
func parsePlain(data []byte, n int) ([]Point, error) {
	points := make([]Point, n)
	seen := make([]bool, n)
	found := 0

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] != "node" {
			continue
		}
		idx, err := vertexIndex(fields[1])
		if err != nil || idx < 0 || idx >= n {
			return nil, pigeonerrors.New(pigeonerrors.ErrCodeInternal, "unexpected node %q in layout output", fields[1])
		}
		x, errX := strconv.ParseFloat(fields[2], 64)
		y, errY := strconv.ParseFloat(fields[3], 64)
		if errX != nil || errY != nil {
			return nil, pigeonerrors.New(pigeonerrors.ErrCodeInternal, "bad position for node %s", fields[1])
		}
		if !seen[idx] {
			seen[idx] = true
			found++
		}
		points[idx] = Point{X: x, Y: y}
	}
	if err := sc.Err(); err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "read layout output")
	}
	if found != n {
		return nil, pigeonerrors.New(pigeonerrors.ErrCodeInternal, "layout placed %d of %d nodes", found, n)
	}
	return points, nil
}

func vertexIndex(name string) (int, error) {
	name = strings.Trim(name, `"`)
	if !strings.HasPrefix(name, "n") {
		return -1, fmt.Errorf("not a vertex name: %s", name)
	}
	return strconv.Atoi(name[1:])
}
