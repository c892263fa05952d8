package repair

import "github.com/deciviz/deciviz/pkg/graph"

// Executor applies repair actions. The zero value is usable and falls
// back to a UUID-based edge ID generator; use New to inject a
// deterministic generator.
type Executor struct {
	GenerateID IDGenerator
}

// New creates an executor with the given ID generator.
// A nil generator falls back to UUIDs.
func New(gen IDGenerator) *Executor {
	if gen == nil {
		gen = UUIDGenerator()
	}
	return &Executor{GenerateID: gen}
}

// Apply executes a single action against the graph and returns new node
// and edge slices. Unrecognized action types and missing targets leave
// the graph unchanged (the original slices are returned as-is, so
// callers can cheaply detect "no change" by comparing lengths).
func (x *Executor) Apply(nodes []graph.Node, edges []graph.Edge, action graph.Action) ([]graph.Node, []graph.Edge) {
	switch action.Type {
	case graph.ActionRemoveNode:
		return removeNode(nodes, edges, action.TargetID)
	case graph.ActionRemoveEdge:
		return nodes, removeEdge(edges, action.TargetID)
	case graph.ActionAddEdge:
		return nodes, x.addEdge(edges, action)
	case graph.ActionUpdateNode:
		return updateNode(nodes, action), edges
	case graph.ActionUpdateEdge:
		return nodes, updateEdge(edges, action)
	}
	// Unknown types (including normalize_probabilities, which has no
	// executor handler) are no-ops.
	return nodes, edges
}

// Apply executes a single action with the default executor.
func Apply(nodes []graph.Node, edges []graph.Edge, action graph.Action) ([]graph.Node, []graph.Edge) {
	return New(nil).Apply(nodes, edges, action)
}

// removeNode filters out the node and every edge touching it.
func removeNode(nodes []graph.Node, edges []graph.Edge, id string) ([]graph.Node, []graph.Edge) {
	outNodes := make([]graph.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.ID != id {
			outNodes = append(outNodes, n)
		}
	}
	outEdges := make([]graph.Edge, 0, len(edges))
	for _, e := range edges {
		if e.Source != id && e.Target != id {
			outEdges = append(outEdges, e)
		}
	}
	return outNodes, outEdges
}

func removeEdge(edges []graph.Edge, id string) []graph.Edge {
	out := make([]graph.Edge, 0, len(edges))
	for _, e := range edges {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// addEdge appends a new edge built from the action's Source/Target.
// TargetID doubles as the new edge's ID; when absent, one is generated.
func (x *Executor) addEdge(edges []graph.Edge, action graph.Action) []graph.Edge {
	id := action.TargetID
	if id == "" {
		gen := x.GenerateID
		if gen == nil {
			gen = UUIDGenerator()
		}
		id = gen()
	}
	out := make([]graph.Edge, 0, len(edges)+1)
	out = append(out, edges...)
	return append(out, graph.Edge{
		ID:     id,
		Source: action.Source,
		Target: action.Target,
		Data:   graph.CopyMeta(action.Data),
	})
}

// updateNode shallow-merges the action data into the target node.
// The well-known keys "label" and "kind" update the corresponding node
// fields; everything else lands in Data.
func updateNode(nodes []graph.Node, action graph.Action) []graph.Node {
	out := make([]graph.Node, len(nodes))
	for i, n := range nodes {
		if n.ID != action.TargetID {
			out[i] = n
			continue
		}
		data := graph.CopyMeta(action.Data)
		if label, ok := data["label"].(string); ok {
			n.Label = label
			delete(data, "label")
		}
		if rawKind, ok := data["kind"].(string); ok {
			n.Kind, _ = graph.NormalizeKind(rawKind)
			delete(data, "kind")
		}
		if len(data) > 0 {
			n.Data = graph.MergeMeta(n.Data, data)
		}
		out[i] = n
	}
	return out
}

func updateEdge(edges []graph.Edge, action graph.Action) []graph.Edge {
	out := make([]graph.Edge, len(edges))
	for i, e := range edges {
		if e.ID == action.TargetID && len(action.Data) > 0 {
			e.Data = graph.MergeMeta(e.Data, action.Data)
		}
		out[i] = e
	}
	return out
}
