package graph

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Graph is the canonical serialization format for decision graphs.
// Used for API payloads, file I/O, caching, and document storage.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// MarshalGraph serializes a Graph to pretty-printed JSON bytes.
// Nodes and edges keep their input order so marshaling is deterministic.
func MarshalGraph(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("unmarshal graph: %w", err)
	}
	return g, nil
}

// NormalizeKinds canonicalizes every node kind in place and returns the
// IDs of nodes whose kind was not recognized (these fall back to factor).
func (g *Graph) NormalizeKinds() []string {
	var unrecognized []string
	for i := range g.Nodes {
		k, ok := NormalizeKind(string(g.Nodes[i].Kind))
		g.Nodes[i].Kind = k
		if !ok && g.Nodes[i].Kind != "" {
			unrecognized = append(unrecognized, g.Nodes[i].ID)
		}
	}
	return unrecognized
}

// SortedNodeIDs returns all node IDs in ascending order.
// Handy for deterministic traversal in validation and tests.
func SortedNodeIDs(nodes []Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	slices.Sort(ids)
	return ids
}

// NodeSet builds a lookup of node IDs.
func NodeSet(nodes []Node) map[string]bool {
	set := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		set[n.ID] = true
	}
	return set
}

// NodeIndex builds an index from node ID to its slice position.
func NodeIndex(nodes []Node) map[string]int {
	idx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		idx[n.ID] = i
	}
	return idx
}

// Adjacency holds outgoing and incoming edge lists per node, keyed by
// node ID. Edges referencing missing nodes still appear in the lists of
// the endpoint that exists.
type Adjacency struct {
	Outgoing map[string][]Edge
	Incoming map[string][]Edge
}

// BuildAdjacency indexes edges by their endpoints.
func BuildAdjacency(edges []Edge) Adjacency {
	adj := Adjacency{
		Outgoing: make(map[string][]Edge),
		Incoming: make(map[string][]Edge),
	}
	for _, e := range edges {
		adj.Outgoing[e.Source] = append(adj.Outgoing[e.Source], e)
		adj.Incoming[e.Target] = append(adj.Incoming[e.Target], e)
	}
	return adj
}
