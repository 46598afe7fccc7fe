package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

// Label is one piece of text centred on a pixel position.
type Label struct {
	Text string
	X, Y int
	Bold bool
}

// Line is an edge segment between two label positions.
type Line struct {
	X1, Y1, X2, Y2 int
}

var (
	// DefaultBackground fills the canvas before anything is drawn.
	DefaultBackground = color.White
	// DefaultTextColor is used for both light and bold labels.
	DefaultTextColor = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	// DefaultEdgeColor is a light gray so edges stay behind the labels.
	DefaultEdgeColor = color.NRGBA{R: 0xb4, G: 0xb4, B: 0xb4, A: 0xff}
)

// DefaultEdgeWidth is the stroke width of edge lines in pixels.
const DefaultEdgeWidth = 0.5

// Option configures a Renderer.
type Option func(*Renderer)

// WithFaces sets the faces for labels outside and inside the silhouette.
func WithFaces(light, bold font.Face) Option {
	return func(r *Renderer) { r.light, r.bold = light, bold }
}

// WithBackground sets the canvas fill color.
func WithBackground(c color.Color) Option {
	return func(r *Renderer) { r.background = c }
}

// WithTextColor sets the label color.
func WithTextColor(c color.Color) Option {
	return func(r *Renderer) { r.text = c }
}

// WithEdgeColor sets the edge stroke color.
func WithEdgeColor(c color.Color) Option {
	return func(r *Renderer) { r.edge = c }
}

// WithEdgeWidth sets the edge stroke width in pixels.
func WithEdgeWidth(w float64) Option {
	return func(r *Renderer) { r.edgeWidth = w }
}

// Renderer rasterizes labels onto a PNG canvas.
type Renderer struct {
	light, bold font.Face
	background  color.Color
	text        color.Color
	edge        color.Color
	edgeWidth   float64
}

// New returns a Renderer. Faces must be supplied with WithFaces before
// rendering any label.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		background: DefaultBackground,
		text:       DefaultTextColor,
		edge:       DefaultEdgeColor,
		edgeWidth:  DefaultEdgeWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws lines first and labels on top, then encodes the canvas as PNG.
func (r *Renderer) Render(w io.Writer, width, height int, labels []Label, lines []Line) error {
	if width <= 0 || height <= 0 {
		return pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput, "canvas %dx%d must be positive", width, height)
	}
	if len(labels) > 0 && (r.light == nil || r.bold == nil) {
		return pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput, "renderer has no font faces")
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(r.background)
	dc.Clear()

	if len(lines) > 0 {
		dc.SetColor(r.edge)
		dc.SetLineWidth(r.edgeWidth)
		for _, l := range lines {
			dc.DrawLine(float64(l.X1), float64(l.Y1), float64(l.X2), float64(l.Y2))
		}
		dc.Stroke()
	}

	dc.SetColor(r.text)
	for _, l := range labels {
		if l.Bold {
			dc.SetFontFace(r.bold)
		} else {
			dc.SetFontFace(r.light)
		}
		dc.DrawStringAnchored(l.Text, float64(l.X), float64(l.Y), 0.5, 0.5)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderFile renders into a temporary file next to path and renames it into
// place, so a failed render never leaves a partial image behind.
func (r *Renderer) RenderFile(path string, width, height int, labels []Label, lines []Line) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "create output dir %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "create temp file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := tmp.Chmod(0644); err != nil {
		return pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "chmod temp file")
	}
	if err := r.Render(tmp, width, height, labels, lines); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "rename to %s", path)
	}
	return nil
}
