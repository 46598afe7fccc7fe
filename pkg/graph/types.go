package graph

// NodeIndex identifies a node by its position in [Graph.Nodes].
type NodeIndex int

// Node is a graph vertex derived from link endpoints.
type Node struct {
	ID    string // raw identifier as it appears in the links
	Label string // display text produced by the LabelRule
}

// Edge connects two nodes by index.
type Edge struct {
	Source NodeIndex
	Target NodeIndex
	User   bool // link was flagged "user": true in the input
}

// Link is a single record of the "links" array.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	User   bool   `json:"user,omitempty"`
}

// Graph holds deduplicated nodes and the edges between them.
// Nodes and edges are append-only; indices never change once assigned.
type Graph struct {
	nodes []Node
	edges []Edge
	index map[string]NodeIndex
	rule  LabelRule
}

// New creates an empty graph that labels nodes with rule.
func New(rule LabelRule) *Graph {
	return &Graph{
		index: make(map[string]NodeIndex),
		rule:  rule,
	}
}

// FromLinks builds a graph from links in order.
func FromLinks(links []Link, rule LabelRule) *Graph {
	g := New(rule)
	for _, l := range links {
		g.AddLink(l)
	}
	return g
}

// AddLink adds both endpoints (if new) and the edge between them.
func (g *Graph) AddLink(l Link) Edge {
	e := Edge{
		Source: g.node(l.Source),
		Target: g.node(l.Target),
		User:   l.User,
	}
	g.edges = append(g.edges, e)
	return e
}

func (g *Graph) node(id string) NodeIndex {
	if i, ok := g.index[id]; ok {
		return i
	}
	i := NodeIndex(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: id, Label: g.rule.Apply(id)})
	g.index[id] = i
	return i
}

// Nodes returns the nodes in index order.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edges in input order.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Index returns the index of the node with the given raw identifier.
func (g *Graph) Index(id string) (NodeIndex, bool) {
	i, ok := g.index[id]
	return i, ok
}

// UserFlags returns the per-edge "user" attribute, parallel to Edges.
func (g *Graph) UserFlags() []bool {
	flags := make([]bool, len(g.edges))
	for i, e := range g.edges {
		flags[i] = e.User
	}
	return flags
}

// UserEdgeCount returns how many edges carry the "user" flag.
func (g *Graph) UserEdgeCount() int {
	n := 0
	for _, e := range g.edges {
		if e.User {
			n++
		}
	}
	return n
}
