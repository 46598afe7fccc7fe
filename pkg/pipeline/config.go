package pipeline

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

// LoadConfig overlays the config file at path onto opts. Files ending in
// .yaml or .yml are read as YAML, anything else as TOML. Keys absent from
// the file keep their current value. Unknown keys are rejected so typos do
// not pass silently. A file that sets dpi but not margin moves the margin to
// one inch at that dpi.
//
//	algorithm = "kamada_kawai"
//	margin = 150
//	draw_edges = true
//
//	[labels]
//	separator = "#"
//	upper = false
//
// The returned ConfigKeys tell callers which top-level keys the file set.
func LoadConfig(path string, opts *Options) (ConfigKeys, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pigeonerrors.NotFound(path, err)
	}
	if err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "read config %s", path)
	}

	var keys ConfigKeys
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		keys, err = decodeYAML(path, data, opts)
	default:
		keys, err = decodeTOML(path, data, opts)
	}
	if err != nil {
		return nil, err
	}

	if keys.Defined("dpi") && !keys.Defined("margin") {
		opts.Margin = opts.DPI
	}
	return keys, nil
}

// ConfigKeys is the set of top-level keys present in a config file.
type ConfigKeys map[string]bool

// Defined reports whether the file set key.
func (k ConfigKeys) Defined(key string) bool { return k[key] }

func decodeTOML(path string, data []byte, opts *Options) (ConfigKeys, error) {
	md, err := toml.Decode(string(data), opts)
	if err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		names := make([]string, len(undecoded))
		for i, k := range undecoded {
			names[i] = k.String()
		}
		return nil, pigeonerrors.New(pigeonerrors.ErrCodeInvalidInput,
			"unknown keys in %s: %s", path, strings.Join(names, ", "))
	}

	keys := ConfigKeys{}
	for _, k := range md.Keys() {
		keys[k[0]] = true
	}
	return keys, nil
}

func decodeYAML(path string, data []byte, opts *Options) (ConfigKeys, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && strings.Contains(err.Error(), "not found in type") {
			return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeInvalidInput, err, "unknown keys in %s", path)
		}
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, "parse config %s", path)
	}

	// The typed decode above has already validated the document.
	var top map[string]any
	if err := yaml.Unmarshal(data, &top); err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, "parse config %s", path)
	}
	keys := ConfigKeys{}
	for k := range top {
		keys[k] = true
	}
	return keys, nil
}
