package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	return writeConfigAs(t, "pigeon.toml", body)
}

func writeConfigAs(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
algorithm = "kamada_kawai"
margin = 150
draw_edges = true
seed = 7
seeded = true

[labels]
separator = "#"
upper = false
`)
	opts := DefaultOptions()
	_, err := LoadConfig(path, &opts)
	require.NoError(t, err)

	assert.Equal(t, "kamada_kawai", opts.Algorithm)
	assert.Equal(t, 150, opts.Margin)
	assert.True(t, opts.DrawEdges)
	assert.Equal(t, uint64(7), opts.Seed)
	assert.True(t, opts.Seeded)
	assert.Equal(t, "#", opts.Labels.Separator)
	assert.False(t, opts.Labels.Upper)

	// untouched keys keep their defaults
	assert.Equal(t, DefaultDPI, opts.DPI)
	assert.Equal(t, DefaultOutput, opts.Output)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfigAs(t, "pigeon.yaml", `
algorithm: circle
margin: 0
user_edges_only: true
labels:
  trim_prefix: 3
  separator: "/"
`)
	opts := DefaultOptions()
	_, err := LoadConfig(path, &opts)
	require.NoError(t, err)

	assert.Equal(t, "circle", opts.Algorithm)
	assert.Equal(t, 0, opts.Margin)
	assert.True(t, opts.UserEdgesOnly)
	assert.Equal(t, 3, opts.Labels.TrimPrefix)
	assert.Equal(t, "/", opts.Labels.Separator)
	assert.Equal(t, DefaultOutput, opts.Output)
}

func TestLoadConfigMarginFollowsDPI(t *testing.T) {
	tests := []struct {
		name       string
		file, body string
		margin     int
	}{
		{"toml dpi only", "pigeon.toml", "dpi = 150\n", 150},
		{"toml dpi and margin", "pigeon.toml", "dpi = 150\nmargin = 20\n", 20},
		{"toml margin only", "pigeon.toml", "margin = 20\n", 20},
		{"yaml dpi only", "pigeon.yaml", "dpi: 150\n", 150},
		{"yaml dpi and margin", "pigeon.yaml", "dpi: 150\nmargin: 0\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			_, err := LoadConfig(writeConfigAs(t, tt.file, tt.body), &opts)
			require.NoError(t, err)
			assert.Equal(t, tt.margin, opts.Margin)
		})
	}
}

func TestConfigKeys(t *testing.T) {
	opts := DefaultOptions()
	keys, err := LoadConfig(writeConfig(t, "margin = 5\n\n[labels]\nupper = true\n"), &opts)
	require.NoError(t, err)
	assert.True(t, keys.Defined("margin"))
	assert.True(t, keys.Defined("labels"))
	assert.False(t, keys.Defined("upper"))
	assert.False(t, keys.Defined("dpi"))

	var none ConfigKeys
	assert.False(t, none.Defined("margin"))
}

func TestLoadExampleConfig(t *testing.T) {
	opts := DefaultOptions()
	_, err := LoadConfig(filepath.Join("..", "..", "examples", "pigeon.toml"), &opts)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions().Algorithm, opts.Algorithm)
	assert.NoError(t, opts.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code pigeonerrors.Code
	}{
		{"missing", filepath.Join(t.TempDir(), "none.toml"), pigeonerrors.ErrCodeResourceNotFound},
		{"syntax", writeConfig(t, "algorithm = "), pigeonerrors.ErrCodeDataFormat},
		{"unknown key", writeConfig(t, "algorthm = \"fdp\"\n"), pigeonerrors.ErrCodeInvalidInput},
		{"wrong type", writeConfig(t, "margin = \"wide\"\n"), pigeonerrors.ErrCodeDataFormat},
		{"yaml syntax", writeConfigAs(t, "bad.yml", "algorithm: [fdp\n"), pigeonerrors.ErrCodeDataFormat},
		{"yaml unknown key", writeConfigAs(t, "typo.yaml", "algorthm: fdp\n"), pigeonerrors.ErrCodeInvalidInput},
		{"yaml wrong type", writeConfigAs(t, "type.yaml", "margin: wide\n"), pigeonerrors.ErrCodeDataFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			_, err := LoadConfig(tt.path, &opts)
			assert.True(t, pigeonerrors.Is(err, tt.code), "got %v, want %s", err, tt.code)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, DefaultAlgorithm, opts.Algorithm)
	assert.Equal(t, "fruchterman_reingold", opts.Algorithm)
	assert.Equal(t, DefaultImage, opts.Image)
	assert.Equal(t, DefaultGraph, opts.Graph)
	assert.Equal(t, 300, opts.Margin)
	assert.Equal(t, 13.0, opts.FontSize)
	assert.Equal(t, 0.5, opts.Threshold)
	assert.Equal(t, ":", opts.Labels.Separator)
	assert.NotNil(t, opts.Logger)
	assert.NoError(t, opts.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   pigeonerrors.Code
	}{
		{"ok", func(o *Options) {}, ""},
		{"zero margin", func(o *Options) { o.Margin = 0 }, ""},
		{"alias", func(o *Options) { o.Algorithm = "drl" }, ""},
		{"unknown algorithm", func(o *Options) { o.Algorithm = "nope" }, pigeonerrors.ErrCodeUnsupportedAlgorithm},
		{"negative margin", func(o *Options) { o.Margin = -1 }, pigeonerrors.ErrCodeInvalidInput},
		{"zero dpi", func(o *Options) { o.DPI = 0 }, pigeonerrors.ErrCodeInvalidInput},
		{"negative font", func(o *Options) { o.FontSize = -2 }, pigeonerrors.ErrCodeInvalidInput},
		{"threshold above one", func(o *Options) { o.Threshold = 1.5 }, pigeonerrors.ErrCodeInvalidInput},
		{"negative sample", func(o *Options) { o.Sample = -3 }, pigeonerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.code, pigeonerrors.GetCode(err))
		})
	}
}
