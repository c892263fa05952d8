package graph

import "fmt"

// =============================================================================
// Metadata
// =============================================================================

// Metadata stores arbitrary key-value pairs attached to nodes or edges.
// Domain fields the validator and layout never interpret (prior, utility,
// body text) travel here untouched.
type Metadata map[string]any

// CopyMeta creates a shallow copy of metadata to avoid aliasing between
// a graph snapshot and its repaired successor. Returns nil for nil input.
func CopyMeta(m Metadata) Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MergeMeta shallow-merges overlay onto base, returning a new map.
// Neither input is modified. A nil overlay returns a copy of base.
func MergeMeta(base, overlay Metadata) Metadata {
	out := make(Metadata, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// =============================================================================
// Node
// =============================================================================

// Position is a canvas coordinate in pixels.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a vertex in a decision graph.
//
// The zero value is not usable - ID must be set. Kind values outside the
// canonical set should be passed through NormalizeKind before the node
// reaches the validator or layout engines.
type Node struct {
	ID       string   `json:"id" bson:"id"`
	Kind     Kind     `json:"kind,omitempty" bson:"kind,omitempty"`
	Label    string   `json:"label,omitempty" bson:"label,omitempty"`
	Position Position `json:"position" bson:"position"`
	Locked   bool     `json:"locked,omitempty" bson:"locked,omitempty"` // excluded from auto-layout
	Data     Metadata `json:"data,omitempty" bson:"data,omitempty"`
}

// DisplayLabel returns the label if set, otherwise a synthesized
// "Node {id}" placeholder.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return fmt.Sprintf("Node %s", n.ID)
}

// =============================================================================
// Edge
// =============================================================================

// ConfidenceKey is the edge data key carrying the probability weight.
const ConfidenceKey = "confidence"

// Edge is a directed connection between two nodes. Source and Target are
// node ID references; an edge pointing at a missing node is a validation
// issue, not a structural error.
type Edge struct {
	ID     string   `json:"id" bson:"id"`
	Source string   `json:"source" bson:"source"`
	Target string   `json:"target" bson:"target"`
	Data   Metadata `json:"data,omitempty" bson:"data,omitempty"`
}

// Confidence returns the edge-local probability weight from
// data.confidence, or 0 when unset. Numeric JSON decodes as float64;
// integer values written programmatically are accepted too.
func (e Edge) Confidence() float64 {
	if e.Data == nil {
		return 0
	}
	switch v := e.Data[ConfidenceKey].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
