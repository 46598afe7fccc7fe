// Package silhouette loads the reference image and decides which pixels lie
// inside its dark shape.
//
// The image is decoded with github.com/disintegration/imaging, so PNG, JPEG,
// GIF, BMP, TIFF, and WebP inputs are all accepted. Pixels are kept as
// non-premultiplied RGBA and classification reads only the first (red)
// channel, which equals the luminance for grayscale silhouettes.
package silhouette

import (
	"errors"
	"image"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/pigeon/pkg/coords"
	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

// DefaultThreshold classifies pixels darker than mid-gray as inside.
const DefaultThreshold = 0.5

// Image is a decoded reference image with a flat, row-major pixel index.
type Image struct {
	pix *image.NRGBA
}

// Load decodes the image file at path.
// A missing file is RESOURCE_NOT_FOUND; an undecodable one is DATA_FORMAT.
func Load(path string) (*Image, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, pigeonerrors.NotFound(path, err)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, "decode image %s", path)
	}
	return FromImage(img), nil
}

// FromImage copies img into an Image whose origin is (0,0).
func FromImage(img image.Image) *Image {
	return &Image{pix: imaging.Clone(img)}
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.pix.Rect.Dx() }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.pix.Rect.Dy() }

// Len returns the number of pixels.
func (m *Image) Len() int { return m.Width() * m.Height() }

// FirstChannel returns the red channel of the pixel at flat index y*width+x.
func (m *Image) FirstChannel(index int) (uint8, error) {
	if index < 0 || index >= m.Len() {
		return 0, pigeonerrors.New(pigeonerrors.ErrCodeIndexOutOfRange,
			"pixel index %d outside 0..%d", index, m.Len()-1)
	}
	x, y := index%m.Width(), index/m.Width()
	return m.pix.Pix[y*m.pix.Stride+x*4], nil
}

// Classifier tests pixels against a luminance threshold.
type Classifier struct {
	// Threshold is a fraction of the maximum channel value. Pixels whose
	// first channel is strictly below Threshold*255 are inside.
	Threshold float64
}

// NewClassifier returns a Classifier using DefaultThreshold.
func NewClassifier() Classifier {
	return Classifier{Threshold: DefaultThreshold}
}

// Inside reports whether p falls in the dark region of img.
//
// Points outside the image fail with INDEX_OUT_OF_RANGE instead of wrapping
// to a neighbouring row.
func (c Classifier) Inside(img *Image, p coords.Pixel) (bool, error) {
	if p.X < 0 || p.X >= img.Width() || p.Y < 0 || p.Y >= img.Height() {
		return false, pigeonerrors.New(pigeonerrors.ErrCodeIndexOutOfRange,
			"pixel (%d,%d) outside %dx%d image", p.X, p.Y, img.Width(), img.Height())
	}
	v, err := img.FirstChannel(p.Y*img.Width() + p.X)
	if err != nil {
		return false, err
	}
	return c.dark(v), nil
}

func (c Classifier) dark(v uint8) bool {
	return float64(v) < c.Threshold*255
}

// DarkArea counts the pixels the classifier puts inside the silhouette.
func (c Classifier) DarkArea(img *Image) int {
	n := 0
	for i := 0; i < img.Len(); i++ {
		v, _ := img.FirstChannel(i)
		if c.dark(v) {
			n++
		}
	}
	return n
}
