package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"

	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

// LoadOptions controls how links are filtered before nodes are extracted.
type LoadOptions struct {
	// Sample keeps a random subset of this many links. Zero or a value not
	// smaller than the number of links keeps everything.
	Sample int

	// Seed drives the sampling permutation. Equal seeds give equal samples.
	Seed uint64

	// UserOnly drops links that are not flagged "user": true.
	UserOnly bool

	// Labels derives display text for each node.
	Labels LabelRule
}

// Load reads the graph JSON file at path.
//
// A missing file is reported as RESOURCE_NOT_FOUND with the path; any problem
// with the document itself is DATA_FORMAT (see [Decode]).
func Load(path string, opts LoadOptions) (*Graph, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pigeonerrors.NotFound(path, err)
	}
	if err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f, opts)
}

// Decode parses a links document from r.
//
// Decode fails with DATA_FORMAT when:
//   - the document is not a JSON object
//   - the "links" key is missing, null, or not a list
//   - a link is not an object, or its "source"/"target" is missing or not a string
func Decode(r io.Reader, opts LoadOptions) (*Graph, error) {
	links, err := decodeLinks(r)
	if err != nil {
		return nil, err
	}
	if opts.UserOnly {
		links = userLinks(links)
	}
	links = Sample(links, opts.Sample, opts.Seed)
	return FromLinks(links, opts.Labels), nil
}

type document struct {
	Links json.RawMessage `json:"links"`
}

type wireLink struct {
	Source *string `json:"source"`
	Target *string `json:"target"`
	User   bool    `json:"user"`
}

func decodeLinks(r io.Reader) ([]Link, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, "decode graph")
	}
	raw := bytes.TrimSpace(doc.Links)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, pigeonerrors.New(pigeonerrors.ErrCodeDataFormat, `missing "links" key`)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, `"links" is not a list`)
	}

	links := make([]Link, 0, len(items))
	for i, item := range items {
		var wl wireLink
		if err := json.Unmarshal(item, &wl); err != nil {
			return nil, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, "link %d", i)
		}
		if wl.Source == nil {
			return nil, pigeonerrors.New(pigeonerrors.ErrCodeDataFormat, `link %d: missing "source"`, i)
		}
		if wl.Target == nil {
			return nil, pigeonerrors.New(pigeonerrors.ErrCodeDataFormat, `link %d: missing "target"`, i)
		}
		links = append(links, Link{Source: *wl.Source, Target: *wl.Target, User: wl.User})
	}
	return links, nil
}

func userLinks(links []Link) []Link {
	out := links[:0:0]
	for _, l := range links {
		if l.User {
			out = append(out, l)
		}
	}
	return out
}

// Sample returns n links drawn without replacement using seed.
// The input slice is not modified. If n <= 0 or n >= len(links) the links are
// returned unchanged.
func Sample(links []Link, n int, seed uint64) []Link {
	if n <= 0 || n >= len(links) {
		return links
	}
	pool := make([]Link, len(links))
	copy(pool, links)

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
