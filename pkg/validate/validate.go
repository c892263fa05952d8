package validate

import "github.com/deciviz/deciviz/pkg/graph"

// Score penalties per issue severity. Info-severity issues do not
// affect the score.
const (
	errorPenalty   = 20
	warningPenalty = 5
)

// Validate runs all detectors over the graph and returns its health.
//
// The detectors are independent - none sees another's output - and run
// in a fixed order, so the issue list order is deterministic. Validate
// never mutates its inputs and never fails: structurally broken input
// (edges referencing absent nodes, empty graphs) produces issues, not
// errors.
func Validate(nodes []graph.Node, edges []graph.Edge) Health {
	nodeSet := graph.NodeSet(nodes)
	adj := graph.BuildAdjacency(edges)

	var issues []Issue
	issues = append(issues, detectCycles(nodes, edges)...)
	issues = append(issues, detectDanglingEdges(nodeSet, edges)...)
	issues = append(issues, detectOrphanNodes(nodes, edges)...)
	issues = append(issues, detectDuplicateEdges(edges)...)
	issues = append(issues, detectSelfLoops(edges)...)
	issues = append(issues, detectMissingLabels(nodes)...)
	issues = append(issues, detectProbabilityErrors(nodes, adj)...)

	h := Health{Issues: issues}
	errors, warnings, _ := h.Counts()

	h.Score = 100 - errorPenalty*errors - warningPenalty*warnings
	if h.Score < 0 {
		h.Score = 0
	}

	switch {
	case errors > 0:
		h.Status = StatusErrors
	case warnings > 0:
		h.Status = StatusWarnings
	default:
		h.Status = StatusHealthy
	}
	return h
}
