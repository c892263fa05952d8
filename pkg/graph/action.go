package graph

// ActionType discriminates repair action variants.
type ActionType string

// Repair action types. NormalizeProbabilities is detection-only: the
// validator attaches it to probability issues but the executor has no
// handler for it (the redistribution strategy is a product decision),
// so applying it is a no-op.
const (
	ActionRemoveNode             ActionType = "remove_node"
	ActionRemoveEdge             ActionType = "remove_edge"
	ActionAddEdge                ActionType = "add_edge"
	ActionUpdateNode             ActionType = "update_node"
	ActionUpdateEdge             ActionType = "update_edge"
	ActionNormalizeProbabilities ActionType = "normalize_probabilities"
)

// Action is a machine-applicable repair step, attached to validation
// issues as a suggested fix and executed by the repair package.
//
// TargetID identifies the node or edge the action operates on. AddEdge
// actions use Source/Target for the new edge's endpoints and TargetID as
// the new edge's ID when the caller wants deterministic results.
type Action struct {
	Type     ActionType `json:"type" bson:"type"`
	TargetID string     `json:"target_id" bson:"target_id"`
	Source   string     `json:"source,omitempty" bson:"source,omitempty"`
	Target   string     `json:"target,omitempty" bson:"target,omitempty"`
	Data     Metadata   `json:"data,omitempty" bson:"data,omitempty"`
}
