// Package graph loads link lists into an index-aligned node/edge graph.
//
// The input is a JSON object whose "links" key holds the edges:
//
//	{
//	  "links": [
//	    {"source": "skos:a", "target": "skos:b", "user": true},
//	    {"source": "skos:b", "target": "skos:c"}
//	  ]
//	}
//
// Nodes are never read from the file. They are derived from link endpoints,
// deduplicated, and numbered in order of first appearance (source before
// target). The resulting [NodeIndex] is the key every later stage uses: layout
// points, normalized points, and labels are all stored at the node's index.
//
// # Sampling
//
// Large link lists can be bounded with [LoadOptions.Sample]. Sampling happens
// before node extraction, so nodes that only appear in dropped links vanish
// from the graph. The sample is drawn from an explicit seed and is therefore
// reproducible.
//
// # Labels
//
// Display text is derived from the identifier by a [LabelRule]. The default
// rule keeps the part after the last ":" and upper-cases it, so
// "skos:exactMatch" is shown as "EXACTMATCH".
package graph
