package repair

import (
	"reflect"
	"testing"

	"github.com/deciviz/deciviz/pkg/graph"
	"github.com/deciviz/deciviz/pkg/validate"
)

func testGraph() ([]graph.Node, []graph.Edge) {
	nodes := []graph.Node{
		{ID: "n1", Kind: graph.KindGoal, Label: "Goal"},
		{ID: "n2", Kind: graph.KindDecision, Label: "Decide"},
		{ID: "n3", Kind: graph.KindOption, Label: "Option"},
	}
	edges := []graph.Edge{
		{ID: "e1", Source: "n1", Target: "n2"},
		{ID: "e2", Source: "n2", Target: "n3"},
	}
	return nodes, edges
}

func TestApplyRemoveNode(t *testing.T) {
	nodes, edges := testGraph()
	outNodes, outEdges := Apply(nodes, edges, graph.Action{Type: graph.ActionRemoveNode, TargetID: "n2"})

	if len(outNodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(outNodes))
	}
	if len(outEdges) != 0 {
		t.Errorf("edges = %d, want 0 (both touched n2)", len(outEdges))
	}
	// Input untouched.
	if len(nodes) != 3 || len(edges) != 2 {
		t.Error("Apply must not mutate its input")
	}
}

func TestApplyRemoveEdge(t *testing.T) {
	nodes, edges := testGraph()
	_, outEdges := Apply(nodes, edges, graph.Action{Type: graph.ActionRemoveEdge, TargetID: "e1"})
	if len(outEdges) != 1 || outEdges[0].ID != "e2" {
		t.Errorf("edges = %+v, want only e2", outEdges)
	}
}

func TestApplyRemoveMissingTargetIsNoop(t *testing.T) {
	nodes, edges := testGraph()
	outNodes, outEdges := Apply(nodes, edges, graph.Action{Type: graph.ActionRemoveEdge, TargetID: "nope"})
	if len(outNodes) != 3 || len(outEdges) != 2 {
		t.Error("removing a missing edge must be a no-op")
	}
}

func TestApplyAddEdge(t *testing.T) {
	nodes, edges := testGraph()
	_, outEdges := Apply(nodes, edges, graph.Action{
		Type:     graph.ActionAddEdge,
		TargetID: "e9",
		Source:   "n1",
		Target:   "n3",
		Data:     graph.Metadata{"confidence": 0.5},
	})
	if len(outEdges) != 3 {
		t.Fatalf("edges = %d, want 3", len(outEdges))
	}
	added := outEdges[2]
	if added.ID != "e9" || added.Source != "n1" || added.Target != "n3" {
		t.Errorf("added edge = %+v", added)
	}
	if added.Confidence() != 0.5 {
		t.Errorf("confidence = %v, want 0.5", added.Confidence())
	}
}

func TestAddEdgeGeneratedID(t *testing.T) {
	x := New(SequentialGenerator())
	nodes, edges := testGraph()
	_, out1 := x.Apply(nodes, edges, graph.Action{Type: graph.ActionAddEdge, Source: "n1", Target: "n3"})
	_, out2 := x.Apply(nodes, edges, graph.Action{Type: graph.ActionAddEdge, Source: "n1", Target: "n3"})
	if out1[2].ID != "edge-1" || out2[2].ID != "edge-2" {
		t.Errorf("generated ids = %q, %q; want edge-1, edge-2", out1[2].ID, out2[2].ID)
	}
}

func TestApplyUpdateNode(t *testing.T) {
	nodes, edges := testGraph()
	nodes[1].Data = graph.Metadata{"prior": 0.4, "body": "notes"}

	outNodes, _ := Apply(nodes, edges, graph.Action{
		Type:     graph.ActionUpdateNode,
		TargetID: "n2",
		Data:     graph.Metadata{"label": "Renamed", "prior": 0.6},
	})

	got := outNodes[1]
	if got.Label != "Renamed" {
		t.Errorf("label = %q, want Renamed", got.Label)
	}
	if got.Data["prior"] != 0.6 {
		t.Errorf("prior = %v, want 0.6", got.Data["prior"])
	}
	if got.Data["body"] != "notes" {
		t.Errorf("body = %v, want preserved", got.Data["body"])
	}
	if nodes[1].Label != "Decide" || nodes[1].Data["prior"] != 0.4 {
		t.Error("update must not mutate the input node")
	}
}

func TestApplyUpdateEdge(t *testing.T) {
	nodes, edges := testGraph()
	_, outEdges := Apply(nodes, edges, graph.Action{
		Type:     graph.ActionUpdateEdge,
		TargetID: "e1",
		Data:     graph.Metadata{"confidence": 0.9},
	})
	if outEdges[0].Confidence() != 0.9 {
		t.Errorf("confidence = %v, want 0.9", outEdges[0].Confidence())
	}
	if edges[0].Data != nil {
		t.Error("input edge must stay untouched")
	}
}

func TestApplyUnknownActionIsNoop(t *testing.T) {
	nodes, edges := testGraph()
	outNodes, outEdges := Apply(nodes, edges, graph.Action{Type: graph.ActionNormalizeProbabilities, TargetID: "n2"})
	if !reflect.DeepEqual(outNodes, nodes) || !reflect.DeepEqual(outEdges, edges) {
		t.Error("normalize_probabilities has no handler and must be a no-op")
	}
}

func TestQuickFixAll(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
		{ID: "c", Label: ""},
	}
	edges := []graph.Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "a", Target: "b"},     // duplicate
		{ID: "e3", Source: "b", Target: "ghost"}, // dangling
		{ID: "e4", Source: "c", Target: "c"},     // self-loop
	}

	res := QuickFixAll(nodes, edges)
	if res.FixedCount != 4 {
		t.Errorf("fixed count = %d, want 4 (duplicate, dangling, self-loop, missing label)", res.FixedCount)
	}

	after := validate.Validate(res.Nodes, res.Edges)
	for _, i := range after.Issues {
		switch i.Type {
		case validate.IssueDanglingEdge, validate.IssueDuplicateEdge, validate.IssueSelfLoop, validate.IssueMissingLabel:
			t.Errorf("issue %v should have been fixed: %s", i.Type, i.Message)
		}
	}
}

func TestQuickFixAllIdempotent(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", Label: "A"}, {ID: "b", Label: "B"}, {ID: "c", Label: "C"},
	}
	edges := []graph.Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "b", Target: "c"},
		{ID: "e3", Source: "c", Target: "a"}, // cycle
		{ID: "e4", Source: "a", Target: "nowhere"},
	}

	first := QuickFixAll(nodes, edges)
	second := QuickFixAll(first.Nodes, first.Edges)

	if second.FixedCount > first.FixedCount {
		t.Errorf("second run fixed %d > first run %d; repair must converge", second.FixedCount, first.FixedCount)
	}

	before := validate.Validate(first.Nodes, first.Edges)
	after := validate.Validate(second.Nodes, second.Edges)
	if len(after.Issues) > len(before.Issues) {
		t.Error("repeated repair must not introduce new issues")
	}
}

func TestApplyIssuesOrdering(t *testing.T) {
	// A dangling edge that is also part of a duplicate pair: the
	// dangling fix (priority 0) removes it first, and the duplicate fix
	// targeting the same edge becomes a harmless no-op.
	nodes := []graph.Node{{ID: "a", Label: "A"}}
	edges := []graph.Edge{
		{ID: "e1", Source: "a", Target: "ghost"},
		{ID: "e2", Source: "a", Target: "ghost"},
	}

	health := validate.Validate(nodes, edges)
	outNodes, outEdges := New(SequentialGenerator()).ApplyIssues(nodes, edges, health.Issues)
	if len(outEdges) != 0 {
		t.Errorf("edges = %+v, want all dangling edges removed", outEdges)
	}
	if len(outNodes) != 1 {
		t.Errorf("nodes = %d, want 1", len(outNodes))
	}
}
