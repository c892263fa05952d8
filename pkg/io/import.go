package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/deciviz/deciviz/pkg/graph"
)

// ReadJSON decodes a JSON graph from r.
//
// Node kinds are normalized to the canonical set; the returned slice
// holds the IDs of nodes whose kind was unrecognized and fell back to
// "factor". The graph itself is returned even when such nodes exist.
//
// ReadJSON returns an error only if the JSON is malformed or a node
// has an empty ID. Structural issues are left to the validators.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (graph.Graph, []string, error) {
	var g graph.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return graph.Graph{}, nil, fmt.Errorf("decode: %w", err)
	}

	for i, n := range g.Nodes {
		if n.ID == "" {
			return graph.Graph{}, nil, fmt.Errorf("node %d: missing id", i)
		}
	}

	unrecognized := g.NormalizeKinds()
	return g, unrecognized, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes
// the file. Errors wrap the underlying cause with the file path for
// context.
func ImportJSON(path string) (graph.Graph, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return graph.Graph{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
