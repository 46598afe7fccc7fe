// Package fonts loads the label typefaces.
//
// Fonts are parsed with golang.org/x/image/font/opentype. When no path is
// given, the Go fonts compiled into golang.org/x/image/font/gofont are used,
// so a render never depends on fonts installed on the host.
package fonts

import (
	"errors"
	"io/fs"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

// FaceDPI is the resolution faces are built at. Font sizes are therefore
// given in pixels, independent of the output DPI.
const FaceDPI = 72

// Weight selects the embedded fallback font.
type Weight int

const (
	Light Weight = iota
	Bold
)

// Embedded returns the raw TTF data of the built-in font for w.
func Embedded(w Weight) []byte {
	if w == Bold {
		return gobold.TTF
	}
	return goregular.TTF
}

// Load returns a face of the given size for the font file at path.
// An empty path selects the embedded font for w.
func Load(path string, w Weight, size float64) (font.Face, error) {
	data := Embedded(w)
	if path != "" {
		b, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pigeonerrors.NotFound(path, err)
		}
		if err != nil {
			return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "read font %s", path)
		}
		data = b
	}
	return Parse(data, size)
}

// Parse builds a face from OpenType or TrueType data.
func Parse(data []byte, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput, "font size must be positive, got %g", size)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, "parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     FaceDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, "build font face")
	}
	return face, nil
}

// Pair holds the two faces used for labels.
type Pair struct {
	Light font.Face
	Bold  font.Face
}

// LoadPair loads the light and bold faces, falling back to the embedded
// fonts for empty paths.
func LoadPair(lightPath, boldPath string, size float64) (Pair, error) {
	light, err := Load(lightPath, Light, size)
	if err != nil {
		return Pair{}, err
	}
	bold, err := Load(boldPath, Bold, size)
	if err != nil {
		light.Close()
		return Pair{}, err
	}
	return Pair{Light: light, Bold: bold}, nil
}

// Close releases both faces.
func (p Pair) Close() error {
	var errs []error
	for _, f := range []font.Face{p.Light, p.Bold} {
		if f != nil {
			errs = append(errs, f.Close())
		}
	}
	return errors.Join(errs...)
}
