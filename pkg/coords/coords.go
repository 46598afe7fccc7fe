// Package coords maps raw layout coordinates into image pixel space.
//
// Mapping happens in two steps. [Normalize] rescales every axis into the unit
// interval using the minimum and maximum observed on that axis. [Canvas.Map]
// then places a normalized point inside the image, leaving a fixed margin on
// every side:
//
//	pixel = round(normalized * (dimension - 2*margin) + margin)
//
// Because normalized values are clamped to [0,1], mapped pixels always lie in
// [margin, dimension-margin].
package coords

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

// Range is the closed interval [Min, Max] observed on one axis.
type Range struct {
	Min, Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Normalized is a point rescaled into the unit square.
type Normalized struct {
	X, Y float64
}

// Pixel is an integer image coordinate.
type Pixel struct {
	X, Y int
}

// Degenerate reports axes on which every point had the same value.
type Degenerate struct {
	X, Y bool
}

// Any reports whether at least one axis collapsed.
func (d Degenerate) Any() bool { return d.X || d.Y }

// Bounds returns the per-axis range of points. Both ranges are zero for an
// empty slice.
func Bounds(points []r2.Vec) (x, y Range) {
	if len(points) == 0 {
		return Range{}, Range{}
	}
	x = Range{Min: points[0].X, Max: points[0].X}
	y = Range{Min: points[0].Y, Max: points[0].Y}
	for _, p := range points[1:] {
		x.Min = math.Min(x.Min, p.X)
		x.Max = math.Max(x.Max, p.X)
		y.Min = math.Min(y.Min, p.Y)
		y.Max = math.Max(y.Max, p.Y)
	}
	return x, y
}

// Normalize min-max scales points into [0,1] per axis, index-aligned with the
// input. An axis whose range is zero maps every value to 0 and is flagged in
// the returned Degenerate.
func Normalize(points []r2.Vec) ([]Normalized, Degenerate) {
	xr, yr := Bounds(points)
	deg := Degenerate{X: xr.Span() == 0, Y: yr.Span() == 0}

	out := make([]Normalized, len(points))
	for i, p := range points {
		out[i] = Normalized{X: scale(p.X, xr), Y: scale(p.Y, yr)}
	}
	return out, deg
}

func scale(v float64, r Range) float64 {
	span := r.Span()
	if span == 0 {
		return 0
	}
	return Clamp((v-r.Min)/span, 0, 1)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Canvas is the drawable area of an image: its size and the margin kept free
// on every side.
type Canvas struct {
	Width  int
	Height int
	Margin int
}

// Validate checks that the margin leaves a drawable area.
func (c Canvas) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput, "canvas size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Margin < 0 {
		return pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput, "margin %d must not be negative", c.Margin)
	}
	if 2*c.Margin >= c.Width || 2*c.Margin >= c.Height {
		return pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput,
			"margin %d leaves no drawable area in a %dx%d image", c.Margin, c.Width, c.Height)
	}
	return nil
}

// Map places a normalized point on the canvas.
func (c Canvas) Map(n Normalized) Pixel {
	return Pixel{
		X: toPixel(n.X, c.Width, c.Margin),
		Y: toPixel(n.Y, c.Height, c.Margin),
	}
}

// MapAll maps every point, index-aligned with the input.
func (c Canvas) MapAll(points []Normalized) []Pixel {
	out := make([]Pixel, len(points))
	for i, n := range points {
		out[i] = c.Map(n)
	}
	return out
}

func toPixel(v float64, dim, margin int) int {
	inner := float64(dim - 2*margin)
	return int(math.Round(v*inner + float64(margin)))
}
