package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font"

	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

func TestLoadEmbedded(t *testing.T) {
	for _, w := range []Weight{Light, Bold} {
		face, err := Load("", w, 13)
		if err != nil {
			t.Fatalf("Load(weight %d) error: %v", w, err)
		}
		if adv := font.MeasureString(face, "pigeon"); adv <= 0 {
			t.Errorf("weight %d: MeasureString = %v, want positive", w, adv)
		}
		face.Close()
	}
}

func TestBoldIsWider(t *testing.T) {
	p, err := LoadPair("", "", 20)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	light := font.MeasureString(p.Light, "WWWWWWWW")
	bold := font.MeasureString(p.Bold, "WWWWWWWW")
	if bold <= light {
		t.Errorf("bold advance %v should exceed light advance %v", bold, light)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.ttf")
	if err := os.WriteFile(path, Embedded(Bold), 0644); err != nil {
		t.Fatal(err)
	}
	face, err := Load(path, Light, 12)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	face.Close()
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.ttf")
	if err := os.WriteFile(garbage, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		size float64
		code pigeonerrors.Code
	}{
		{"missing", filepath.Join(dir, "nope.ttf"), 12, pigeonerrors.ErrCodeResourceNotFound},
		{"garbage", garbage, 12, pigeonerrors.ErrCodeDataFormat},
		{"zero size", "", 0, pigeonerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, Light, tt.size)
			if !pigeonerrors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}
