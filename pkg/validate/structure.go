package validate

import (
	"fmt"

	"github.com/deciviz/deciviz/pkg/graph"
)

// detectDanglingEdges reports edges whose source or target is not in the
// node set. Dangling references are ordinary data (a node was deleted
// while its edges survived), so they surface as removable issues rather
// than traversal failures.
func detectDanglingEdges(nodeSet map[string]bool, edges []graph.Edge) []Issue {
	var issues []Issue
	for _, e := range edges {
		var missing string
		switch {
		case !nodeSet[e.Source]:
			missing = e.Source
		case !nodeSet[e.Target]:
			missing = e.Target
		default:
			continue
		}
		issues = append(issues, Issue{
			ID:       issueID(IssueDanglingEdge, e.ID),
			Type:     IssueDanglingEdge,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Edge %s references missing node %q", e.ID, missing),
			EdgeIDs:  []string{e.ID},
			SuggestedFix: &graph.Action{
				Type:     graph.ActionRemoveEdge,
				TargetID: e.ID,
			},
		})
	}
	return issues
}

// detectOrphanNodes reports nodes with no incident edges. There is no
// suggested fix: whether to connect or delete an isolated node is a
// human decision.
func detectOrphanNodes(nodes []graph.Node, edges []graph.Edge) []Issue {
	touched := make(map[string]bool, len(nodes))
	for _, e := range edges {
		touched[e.Source] = true
		touched[e.Target] = true
	}

	var issues []Issue
	for _, n := range nodes {
		if touched[n.ID] {
			continue
		}
		issues = append(issues, Issue{
			ID:       issueID(IssueOrphanNode, n.ID),
			Type:     IssueOrphanNode,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Node %q is not connected to any other node", n.DisplayLabel()),
			NodeIDs:  []string{n.ID},
		})
	}
	return issues
}

// detectDuplicateEdges reports (source, target) pairs covered by more
// than one edge. The fix keeps the first occurrence and removes the
// second; with three or more duplicates, re-validating after a fix
// surfaces the next one.
func detectDuplicateEdges(edges []graph.Edge) []Issue {
	byPair := make(map[string][]graph.Edge)
	var order []string
	for _, e := range edges {
		key := e.Source + "\x00" + e.Target
		if len(byPair[key]) == 0 {
			order = append(order, key)
		}
		byPair[key] = append(byPair[key], e)
	}

	var issues []Issue
	for _, key := range order {
		group := byPair[key]
		if len(group) < 2 {
			continue
		}
		ids := make([]string, len(group))
		for i, e := range group {
			ids[i] = e.ID
		}
		issues = append(issues, Issue{
			ID:       issueID(IssueDuplicateEdge, ids...),
			Type:     IssueDuplicateEdge,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%d edges connect %s → %s", len(group), group[0].Source, group[0].Target),
			EdgeIDs:  ids,
			SuggestedFix: &graph.Action{
				Type:     graph.ActionRemoveEdge,
				TargetID: group[1].ID,
			},
		})
	}
	return issues
}

// detectSelfLoops reports edges whose source and target are the same node.
func detectSelfLoops(edges []graph.Edge) []Issue {
	var issues []Issue
	for _, e := range edges {
		if e.Source != e.Target {
			continue
		}
		issues = append(issues, Issue{
			ID:       issueID(IssueSelfLoop, e.ID),
			Type:     IssueSelfLoop,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Node %q links to itself", e.Source),
			NodeIDs:  []string{e.Source},
			EdgeIDs:  []string{e.ID},
			SuggestedFix: &graph.Action{
				Type:     graph.ActionRemoveEdge,
				TargetID: e.ID,
			},
		})
	}
	return issues
}
