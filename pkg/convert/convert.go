// Package convert turns an NDJSON dump of RDF-style statements into the
// graph JSON read by pkg/graph.
//
// Each input line is one statement:
//
//	{"subject": "mm:1234", "predicate": "skos:exactMatch", "objectUri": "aat:300"}
//
// Statements with a literal object (no objectUri) and statements whose
// predicate is not in the allow list are skipped. The output lists every
// node once, in order of first appearance, with its namespace as group:
//
//	{"nodes": [{"id": "mm:1234", "group": "mm"}, ...],
//	 "links": [{"source": "mm:1234", "target": "aat:300", "value": 0}, ...]}
//
// A link's value is the position of its predicate in the allow list.
package convert

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	pigeonerrors "github.com/matzehuels/pigeon/pkg/errors"
)

// DefaultPredicates are the SKOS mapping relations kept by default.
var DefaultPredicates = []string{
	"skos:exactMatch",
	"skos:broader",
	"skos:narrower",
	"skos:relatedMatch",
	"skos:mappingRelation",
}

// Options controls which statements become links.
type Options struct {
	Predicates []string // allow list; empty means DefaultPredicates
}

// Stats counts what happened to the input lines.
type Stats struct {
	Statements int // non-blank lines read
	Literals   int // skipped: object is a literal
	Filtered   int // skipped: predicate not allowed
	Nodes      int
	Links      int
}

// Node is one output vertex.
type Node struct {
	ID    string `json:"id"`
	Group string `json:"group"`
}

// Link is one output edge.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

// Document is the converted graph.
type Document struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

type statement struct {
	Subject   string  `json:"subject"`
	Predicate string  `json:"predicate"`
	ObjectURI *string `json:"objectUri"`
}

// Namespace returns the part of id before the first ":", or id itself.
func Namespace(id string) string {
	ns, _, _ := strings.Cut(id, ":")
	return ns
}

// Build reads statements from r and returns the converted document.
// A line that is not a JSON statement fails with DATA_FORMAT naming the line.
func Build(r io.Reader, opts Options) (*Document, Stats, error) {
	predicates := opts.Predicates
	if len(predicates) == 0 {
		predicates = DefaultPredicates
	}

	doc := &Document{Nodes: []Node{}, Links: []Link{}}
	seen := make(map[string]bool)
	addNode := func(id string) {
		if !seen[id] {
			seen[id] = true
			doc.Nodes = append(doc.Nodes, Node{ID: id, Group: Namespace(id)})
		}
	}

	var stats Stats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		stats.Statements++

		var st statement
		if err := json.Unmarshal([]byte(text), &st); err != nil {
			return nil, stats, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, "line %d", line)
		}
		if st.ObjectURI == nil {
			stats.Literals++
			continue
		}
		value := slices.Index(predicates, st.Predicate)
		if value < 0 {
			stats.Filtered++
			continue
		}
		if st.Subject == "" {
			return nil, stats, pigeonerrors.New(pigeonerrors.ErrCodeDataFormat, "line %d: missing subject", line)
		}

		addNode(st.Subject)
		addNode(*st.ObjectURI)
		doc.Links = append(doc.Links, Link{Source: st.Subject, Target: *st.ObjectURI, Value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, stats, pigeonerrors.Wrap(pigeonerrors.ErrCodeDataFormat, err, "read statements")
	}

	stats.Nodes = len(doc.Nodes)
	stats.Links = len(doc.Links)
	return doc, stats, nil
}

// Triples converts the statements in r and writes the document to w.
func Triples(r io.Reader, w io.Writer, opts Options) (Stats, error) {
	doc, stats, err := Build(r, opts)
	if err != nil {
		return stats, err
	}
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return stats, pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "write graph")
	}
	return stats, nil
}

// File converts the NDJSON file at in into the graph JSON file at out.
// The output is only created once the whole input has been read.
func File(in, out string, opts Options) (Stats, error) {
	f, err := os.Open(in)
	if errors.Is(err, fs.ErrNotExist) {
		return Stats{}, pigeonerrors.NotFound(in, err)
	}
	if err != nil {
		return Stats{}, pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "open %s", in)
	}
	defer f.Close()

	doc, stats, err := Build(f, opts)
	if err != nil {
		return stats, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return stats, pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "encode graph")
	}
	if err := os.WriteFile(out, append(data, '\n'), 0644); err != nil {
		return stats, pigeonerrors.Wrap(pigeonerrors.ErrCodeInternal, err, "write %s", out)
	}
	return stats, nil
}
