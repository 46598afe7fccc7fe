package pipeline

import (
	"fmt"

	"github.com/matzehuels/pigeon/pkg/coords"
	"github.com/matzehuels/pigeon/pkg/graph"
	"github.com/matzehuels/pigeon/pkg/silhouette"
)

// Classify maps every normalized point onto the canvas and tests the pixel
// against the silhouette, filling p.Pixels and p.Inside in one pass.
//
// With a zero margin a coordinate of 1.0 maps one past the last pixel. That
// point is drawn where it maps but classified by the last pixel row or column.
func Classify(p *Placement, canvas coords.Canvas, img *silhouette.Image, c silhouette.Classifier) error {
	p.Pixels = make([]coords.Pixel, p.Len())
	p.Inside = make([]bool, p.Len())
	for i, n := range p.Normalized {
		px := canvas.Map(n)
		inside, err := c.Inside(img, edgePixel(px, img))
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		p.Pixels[i] = px
		p.Inside[i] = inside
	}
	return nil
}

// edgePixel pulls a pixel sitting exactly on the far edge of img back onto
// the last row or column. Anything further out is left for Inside to reject.
func edgePixel(px coords.Pixel, img *silhouette.Image) coords.Pixel {
	if px.X == img.Width() {
		px.X--
	}
	if px.Y == img.Height() {
		px.Y--
	}
	return px
}

// Labels joins node text with the classified placement.
func Labels(g *graph.Graph, p *Placement) []Label {
	nodes := g.Nodes()
	labels := make([]Label, len(nodes))
	for i, n := range nodes {
		labels[i] = Label{
			Index:  graph.NodeIndex(i),
			Text:   n.Label,
			Point:  p.Pixels[i],
			Inside: p.Inside[i],
		}
	}
	return labels
}
