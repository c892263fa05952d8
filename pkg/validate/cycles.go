package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/deciviz/deciviz/pkg/graph"
)

// detectCycles finds directed cycles via depth-first search with a
// recursion stack. Traversal starts from every unvisited node in sorted
// ID order, and children are visited in sorted order, so the reported
// cycles are deterministic for identical input.
//
// Each DFS root reports at most the first cycle it discovers - the
// search is not exhaustive. The suggested fix removes the closing edge
// of the cycle (second-to-last node → last node in the path).
func detectCycles(nodes []graph.Node, edges []graph.Edge) []Issue {
	children := make(map[string][]string, len(nodes))
	edgeID := make(map[string]string, len(edges))
	for _, e := range edges {
		children[e.Source] = append(children[e.Source], e.Target)
		key := e.Source + "\x00" + e.Target
		if _, ok := edgeID[key]; !ok {
			edgeID[key] = e.ID
		}
	}
	for id := range children {
		slices.Sort(children[id])
	}

	visited := make(map[string]bool, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	var path []string
	var cycle []string // first cycle found for the current root

	var dfs func(id string)
	dfs = func(id string) {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, child := range children[id] {
			if cycle != nil {
				break
			}
			if child == id {
				continue // self-loops have their own detector
			}
			if !visited[child] {
				dfs(child)
			} else if onStack[child] {
				at := slices.Index(path, child)
				cycle = append(slices.Clone(path[at:]), child)
			}
		}

		path = path[:len(path)-1]
		onStack[id] = false
	}

	var issues []Issue
	for _, id := range graph.SortedNodeIDs(nodes) {
		if visited[id] {
			continue
		}
		cycle = nil
		dfs(id)
		if cycle == nil {
			continue
		}

		closingSource := cycle[len(cycle)-2]
		closingTarget := cycle[len(cycle)-1]
		issue := Issue{
			ID:       issueID(IssueCycle, cycle...),
			Type:     IssueCycle,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Cycle detected: %s", strings.Join(cycle, " → ")),
			NodeIDs:  cycle,
		}
		if eid, ok := edgeID[closingSource+"\x00"+closingTarget]; ok {
			issue.EdgeIDs = []string{eid}
			issue.SuggestedFix = &graph.Action{Type: graph.ActionRemoveEdge, TargetID: eid}
		}
		issues = append(issues, issue)
	}
	return issues
}
