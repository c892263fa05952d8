package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/deciviz/deciviz/pkg/graph"
)

// probabilityTolerance is the allowed deviation of a node's outgoing
// confidence sum from 1.0 (1%).
const probabilityTolerance = 0.01

// detectMissingLabels reports nodes with empty or whitespace-only
// labels. The fix writes a synthesized "Node {id}" placeholder.
func detectMissingLabels(nodes []graph.Node) []Issue {
	var issues []Issue
	for _, n := range nodes {
		if strings.TrimSpace(n.Label) != "" {
			continue
		}
		issues = append(issues, Issue{
			ID:       issueID(IssueMissingLabel, n.ID),
			Type:     IssueMissingLabel,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("Node %s has no label", n.ID),
			NodeIDs:  []string{n.ID},
			SuggestedFix: &graph.Action{
				Type:     graph.ActionUpdateNode,
				TargetID: n.ID,
				Data:     graph.Metadata{"label": fmt.Sprintf("Node %s", n.ID)},
			},
		})
	}
	return issues
}

// detectProbabilityErrors checks that each node's outgoing confidences
// sum to 100% within tolerance.
//
// Nodes with no outgoing edges are skipped, as are nodes where every
// outgoing confidence is exactly zero - an all-zero fan-out is the
// pristine "not yet assigned" state, not an error. Once any branch
// carries a non-zero confidence, the whole fan-out (zeros included)
// must sum to 1.0 ± 1%.
//
// The suggested normalize_probabilities fix is detection-only: the
// repair executor deliberately has no handler for it.
func detectProbabilityErrors(nodes []graph.Node, adj graph.Adjacency) []Issue {
	var issues []Issue
	for _, n := range nodes {
		outgoing := adj.Outgoing[n.ID]
		if len(outgoing) == 0 {
			continue
		}

		sum := 0.0
		allZero := true
		edgeIDs := make([]string, len(outgoing))
		for i, e := range outgoing {
			c := e.Confidence()
			sum += c
			if c != 0 {
				allZero = false
			}
			edgeIDs[i] = e.ID
		}
		if allZero {
			continue
		}
		if math.Abs(sum-1.0) <= probabilityTolerance {
			continue
		}

		pct := sum * 100
		var msg string
		if len(outgoing) == 1 {
			msg = fmt.Sprintf("Node %q has incomplete probability: its only branch carries %.0f%%", n.DisplayLabel(), pct)
		} else {
			msg = fmt.Sprintf("Branch probabilities of %q sum to %.0f%%, not 100%%", n.DisplayLabel(), pct)
		}

		issues = append(issues, Issue{
			ID:       issueID(IssueProbabilityError, n.ID),
			Type:     IssueProbabilityError,
			Severity: SeverityError,
			Message:  msg,
			NodeIDs:  []string{n.ID},
			EdgeIDs:  edgeIDs,
			SuggestedFix: &graph.Action{
				Type:     graph.ActionNormalizeProbabilities,
				TargetID: n.ID,
			},
		})
	}
	return issues
}
