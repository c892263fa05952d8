package repair

import (
	"sort"

	"github.com/deciviz/deciviz/pkg/graph"
	"github.com/deciviz/deciviz/pkg/validate"
)

// fixPriority orders batch repair so structural removals run before
// content fixes. Lower values apply first; unknown types run last.
var fixPriority = map[validate.IssueType]int{
	validate.IssueDanglingEdge:  0,
	validate.IssueSelfLoop:      1,
	validate.IssueDuplicateEdge: 2,
	validate.IssueCycle:         3,
	validate.IssueMissingLabel:  4,
	validate.IssueOrphanNode:    5,
}

// ApplyIssues applies every issue's suggested fix in priority order and
// returns the repaired graph. Issues without a fix are skipped. Within
// the same priority, input order is preserved (sort is stable), so the
// result is deterministic.
func (x *Executor) ApplyIssues(nodes []graph.Node, edges []graph.Edge, issues []validate.Issue) ([]graph.Node, []graph.Edge) {
	ordered := make([]validate.Issue, 0, len(issues))
	for _, i := range issues {
		if i.Fixable() {
			ordered = append(ordered, i)
		}
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		pa, oka := fixPriority[ordered[a].Type]
		pb, okb := fixPriority[ordered[b].Type]
		if !oka {
			pa = len(fixPriority)
		}
		if !okb {
			pb = len(fixPriority)
		}
		return pa < pb
	})

	for _, i := range ordered {
		nodes, edges = x.Apply(nodes, edges, *i.SuggestedFix)
	}
	return nodes, edges
}

// FixResult is the outcome of a bulk repair run.
type FixResult struct {
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
	// FixedCount is the number of issues that carried a suggested fix,
	// i.e. attempted fixes - not verified resolutions. Re-validate to
	// see what actually remains.
	FixedCount int `json:"fixed_count"`
}

// QuickFixAll validates the graph and applies every available suggested
// fix in one pass.
func (x *Executor) QuickFixAll(nodes []graph.Node, edges []graph.Edge) FixResult {
	health := validate.Validate(nodes, edges)

	fixable := 0
	for _, i := range health.Issues {
		if i.Fixable() {
			fixable++
		}
	}

	outNodes, outEdges := x.ApplyIssues(nodes, edges, health.Issues)
	return FixResult{Nodes: outNodes, Edges: outEdges, FixedCount: fixable}
}

// QuickFixAll runs bulk repair with the default executor.
func QuickFixAll(nodes []graph.Node, edges []graph.Edge) FixResult {
	return New(nil).QuickFixAll(nodes, edges)
}
