package coords

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gonum.org/v1/gonum/spatial/r2"

	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

func TestBounds(t *testing.T) {
	tests := []struct {
		name   string
		points []r2.Vec
		wantX  Range
		wantY  Range
	}{
		{"empty", nil, Range{}, Range{}},
		{"single", []r2.Vec{{X: 2, Y: -1}}, Range{2, 2}, Range{-1, -1}},
		{"mixed", []r2.Vec{{X: 1, Y: 5}, {X: -3, Y: 2}, {X: 4, Y: 9}}, Range{-3, 4}, Range{2, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Bounds(tt.points)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Bounds() = %v, %v, want %v, %v", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	points := []r2.Vec{{X: -10, Y: 0}, {X: 0, Y: 50}, {X: 10, Y: 100}}
	got, deg := Normalize(points)

	if deg.Any() {
		t.Errorf("Degenerate = %+v, want none", deg)
	}
	want := []Normalized{{0, 0}, {0.5, 0.5}, {1, 1}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Normalize()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNormalizeDegenerateAxis(t *testing.T) {
	points := []r2.Vec{{X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 5}}
	got, deg := Normalize(points)

	if !deg.X || deg.Y {
		t.Errorf("Degenerate = %+v, want X only", deg)
	}
	for i, n := range got {
		if n.X != 0 {
			t.Errorf("Normalize()[%d].X = %v, want 0 on a collapsed axis", i, n.X)
		}
		if math.IsNaN(n.Y) {
			t.Errorf("Normalize()[%d].Y is NaN", i)
		}
	}
	if got[2].Y != 1 {
		t.Errorf("Normalize()[2].Y = %v, want 1", got[2].Y)
	}
}

func TestNormalizeSinglePoint(t *testing.T) {
	got, deg := Normalize([]r2.Vec{{X: 7, Y: 7}})
	if !deg.X || !deg.Y {
		t.Errorf("Degenerate = %+v, want both axes", deg)
	}
	if got[0] != (Normalized{}) {
		t.Errorf("Normalize() = %v, want origin", got[0])
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, want float64 }{
		{-0.1, 0}, {0, 0}, {0.4, 0.4}, {1, 1}, {1.0000001, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, 0, 1); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestCanvasMap(t *testing.T) {
	tests := []struct {
		name   string
		canvas Canvas
		in     Normalized
		want   Pixel
	}{
		{"centre no margin", Canvas{10, 10, 0}, Normalized{0.5, 0.5}, Pixel{5, 5}},
		{"origin with margin", Canvas{100, 60, 10}, Normalized{0, 0}, Pixel{10, 10}},
		{"far corner with margin", Canvas{100, 60, 10}, Normalized{1, 1}, Pixel{90, 50}},
		{"rounds half away from zero", Canvas{11, 11, 0}, Normalized{0.5, 0.5}, Pixel{6, 6}},
		{"print defaults", Canvas{3000, 2400, 300}, Normalized{0.25, 0.75}, Pixel{900, 1650}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.canvas.Map(tt.in); got != tt.want {
				t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanvasValidate(t *testing.T) {
	tests := []struct {
		name    string
		canvas  Canvas
		wantErr bool
	}{
		{"valid", Canvas{100, 100, 10}, false},
		{"zero margin", Canvas{1, 1, 0}, false},
		{"zero width", Canvas{0, 100, 0}, true},
		{"negative margin", Canvas{100, 100, -1}, true},
		{"margin eats width", Canvas{100, 300, 50}, true},
		{"margin eats height", Canvas{300, 20, 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.canvas.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !pigeonerrors.Is(err, pigeonerrors.ErrCodeInvalidInput) {
				t.Errorf("Validate() code = %q, want INVALID_INPUT", pigeonerrors.GetCode(err))
			}
		})
	}
}

func TestMappingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("mapped pixels stay inside the margin", prop.ForAll(
		func(v float64, dim, margin int) bool {
			if 2*margin >= dim {
				return true
			}
			c := Canvas{Width: dim, Height: dim, Margin: margin}
			p := c.Map(Normalized{X: v, Y: v})
			return p.X >= margin && p.X <= dim-margin && p.Y >= margin && p.Y <= dim-margin
		},
		gen.Float64Range(0, 1),
		gen.IntRange(1, 5000),
		gen.IntRange(0, 2500),
	))

	properties.Property("normalized values lie in the unit interval", prop.ForAll(
		func(xs, ys []float64) bool {
			n := min(len(xs), len(ys))
			points := make([]r2.Vec, n)
			for i := 0; i < n; i++ {
				points[i] = r2.Vec{X: xs[i], Y: ys[i]}
			}
			got, _ := Normalize(points)
			for _, p := range got {
				if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-1e6, 1e6)),
		gen.SliceOf(gen.Float64Range(-1e6, 1e6)),
	))

	properties.Property("renormalizing normalized data is stable", prop.ForAll(
		func(xs []float64) bool {
			points := make([]r2.Vec, len(xs))
			for i, x := range xs {
				points[i] = r2.Vec{X: x, Y: -x}
			}
			once, _ := Normalize(points)
			again := make([]r2.Vec, len(once))
			for i, p := range once {
				again[i] = r2.Vec{X: p.X, Y: p.Y}
			}
			twice, _ := Normalize(again)
			for i := range once {
				if math.Abs(once[i].X-twice[i].X) > 1e-9 || math.Abs(once[i].Y-twice[i].Y) > 1e-9 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-1000, 1000)),
	))

	properties.TestingRun(t)
}
