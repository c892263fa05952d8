package validate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/deciviz/deciviz/pkg/graph"
)

func node(id string, kind graph.Kind, label string) graph.Node {
	return graph.Node{ID: id, Kind: kind, Label: label}
}

func edge(id, source, target string) graph.Edge {
	return graph.Edge{ID: id, Source: source, Target: target}
}

func edgeC(id, source, target string, confidence float64) graph.Edge {
	return graph.Edge{ID: id, Source: source, Target: target, Data: graph.Metadata{"confidence": confidence}}
}

func issuesOfType(h Health, t IssueType) []Issue {
	var out []Issue
	for _, i := range h.Issues {
		if i.Type == t {
			out = append(out, i)
		}
	}
	return out
}

func TestValidateEmptyGraph(t *testing.T) {
	h := Validate(nil, nil)
	if h.Status != StatusHealthy {
		t.Errorf("status = %v, want healthy", h.Status)
	}
	if h.Score != 100 {
		t.Errorf("score = %d, want 100", h.Score)
	}
	if len(h.Issues) != 0 {
		t.Errorf("issues = %v, want none", h.Issues)
	}
}

func TestValidateCleanGraph(t *testing.T) {
	nodes := []graph.Node{
		node("n1", graph.KindGoal, "Goal"),
		node("n2", graph.KindDecision, "Pick one"),
	}
	edges := []graph.Edge{edge("e1", "n1", "n2")}

	h := Validate(nodes, edges)
	if h.Status != StatusHealthy || h.Score != 100 {
		t.Errorf("got status=%v score=%d, want healthy/100: %+v", h.Status, h.Score, h.Issues)
	}
}

func TestDetectCycle(t *testing.T) {
	nodes := []graph.Node{
		node("a", graph.KindDecision, "A"),
		node("b", graph.KindOption, "B"),
		node("c", graph.KindFactor, "C"),
	}
	edges := []graph.Edge{
		edge("e1", "a", "b"),
		edge("e2", "b", "c"),
		edge("e3", "c", "a"),
	}

	h := Validate(nodes, edges)
	cycles := issuesOfType(h, IssueCycle)
	if len(cycles) != 1 {
		t.Fatalf("cycle issues = %d, want 1", len(cycles))
	}
	want := []string{"a", "b", "c", "a"}
	if !reflect.DeepEqual(cycles[0].NodeIDs, want) {
		t.Errorf("cycle path = %v, want %v", cycles[0].NodeIDs, want)
	}
	if h.Status != StatusErrors {
		t.Errorf("status = %v, want errors", h.Status)
	}
	fix := cycles[0].SuggestedFix
	if fix == nil || fix.Type != graph.ActionRemoveEdge || fix.TargetID != "e3" {
		t.Errorf("fix = %+v, want remove_edge e3 (closing edge c→a)", fix)
	}
}

func TestCycleOnlyFirstPerRoot(t *testing.T) {
	// Two cycles reachable from the same component: only the first
	// found is reported for that root.
	nodes := []graph.Node{
		node("a", "", "A"), node("b", "", "B"),
		node("x", "", "X"), node("y", "", "Y"),
	}
	edges := []graph.Edge{
		edge("e1", "a", "b"), edge("e2", "b", "a"),
		edge("e3", "x", "y"), edge("e4", "y", "x"),
	}

	h := Validate(nodes, edges)
	cycles := issuesOfType(h, IssueCycle)
	if len(cycles) != 2 {
		t.Fatalf("cycle issues = %d, want 2 (one per disconnected root)", len(cycles))
	}
}

func TestDetectDanglingEdge(t *testing.T) {
	nodes := []graph.Node{node("n1", graph.KindGoal, "G")}
	edges := []graph.Edge{edge("e1", "n1", "ghost")}

	h := Validate(nodes, edges)
	dangling := issuesOfType(h, IssueDanglingEdge)
	if len(dangling) != 1 {
		t.Fatalf("dangling issues = %d, want 1", len(dangling))
	}
	fix := dangling[0].SuggestedFix
	if fix == nil || fix.Type != graph.ActionRemoveEdge || fix.TargetID != "e1" {
		t.Errorf("fix = %+v, want remove_edge e1", fix)
	}
	if dangling[0].Severity != SeverityError {
		t.Errorf("severity = %v, want error", dangling[0].Severity)
	}
}

func TestDetectOrphanNode(t *testing.T) {
	nodes := []graph.Node{
		node("n1", graph.KindGoal, "G"),
		node("n2", graph.KindDecision, "D"),
		node("lonely", graph.KindFactor, "F"),
	}
	edges := []graph.Edge{edge("e1", "n1", "n2")}

	h := Validate(nodes, edges)
	orphans := issuesOfType(h, IssueOrphanNode)
	if len(orphans) != 1 || orphans[0].NodeIDs[0] != "lonely" {
		t.Fatalf("orphans = %+v, want exactly node lonely", orphans)
	}
	if orphans[0].SuggestedFix != nil {
		t.Error("orphan issues must not carry a fix (human decision)")
	}
}

func TestDetectDuplicateEdges(t *testing.T) {
	nodes := []graph.Node{node("a", "", "A"), node("b", "", "B")}
	edges := []graph.Edge{
		edge("e1", "a", "b"),
		edge("e2", "a", "b"),
		edge("e3", "a", "b"),
	}

	h := Validate(nodes, edges)
	dups := issuesOfType(h, IssueDuplicateEdge)
	if len(dups) != 1 {
		t.Fatalf("duplicate issues = %d, want 1 per pair", len(dups))
	}
	if fix := dups[0].SuggestedFix; fix == nil || fix.TargetID != "e2" {
		t.Errorf("fix = %+v, want removal of second occurrence e2", dups[0].SuggestedFix)
	}
	if len(dups[0].EdgeIDs) != 3 {
		t.Errorf("edge ids = %v, want all three occurrences listed", dups[0].EdgeIDs)
	}
}

func TestDetectSelfLoop(t *testing.T) {
	nodes := []graph.Node{node("a", "", "A")}
	edges := []graph.Edge{edge("e1", "a", "a")}

	h := Validate(nodes, edges)
	loops := issuesOfType(h, IssueSelfLoop)
	if len(loops) != 1 {
		t.Fatalf("self-loop issues = %d, want 1", len(loops))
	}
	if loops[0].Severity != SeverityWarning {
		t.Errorf("severity = %v, want warning", loops[0].Severity)
	}
}

func TestDetectMissingLabel(t *testing.T) {
	nodes := []graph.Node{
		node("a", "", ""),
		node("b", "", "   "),
		node("c", "", "Labeled"),
	}
	edges := []graph.Edge{edge("e1", "a", "b"), edge("e2", "b", "c")}

	h := Validate(nodes, edges)
	missing := issuesOfType(h, IssueMissingLabel)
	if len(missing) != 2 {
		t.Fatalf("missing-label issues = %d, want 2", len(missing))
	}
	fix := missing[0].SuggestedFix
	if fix == nil || fix.Type != graph.ActionUpdateNode {
		t.Fatalf("fix = %+v, want update_node", fix)
	}
	if fix.Data["label"] != "Node a" {
		t.Errorf("synthesized label = %v, want %q", fix.Data["label"], "Node a")
	}
	// Info issues do not drag the score down.
	if h.Score != 100 || h.Status != StatusHealthy {
		t.Errorf("status=%v score=%d, want healthy/100", h.Status, h.Score)
	}
}

func TestProbabilityValidation(t *testing.T) {
	tests := []struct {
		name       string
		edges      []graph.Edge
		wantIssues int
		wantSubstr string
	}{
		{
			name: "SumSixtyPercent",
			edges: []graph.Edge{
				edgeC("e1", "d", "o1", 0.3),
				edgeC("e2", "d", "o2", 0.3),
			},
			wantIssues: 1,
			wantSubstr: "60%",
		},
		{
			name:       "SingleEdgeComplete",
			edges:      []graph.Edge{edgeC("e1", "d", "o1", 1.0)},
			wantIssues: 0,
		},
		{
			name: "PristineAllZero",
			edges: []graph.Edge{
				edge("e1", "d", "o1"),
				edge("e2", "d", "o2"),
			},
			wantIssues: 0,
		},
		{
			name:       "SingleEdgeIncomplete",
			edges:      []graph.Edge{edgeC("e1", "d", "o1", 0.4)},
			wantIssues: 1,
			wantSubstr: "incomplete",
		},
		{
			name: "WithinTolerance",
			edges: []graph.Edge{
				edgeC("e1", "d", "o1", 0.495),
				edgeC("e2", "d", "o2", 0.5),
			},
			wantIssues: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := []graph.Node{
				node("d", graph.KindDecision, "D"),
				node("o1", graph.KindOption, "O1"),
				node("o2", graph.KindOption, "O2"),
			}
			h := Validate(nodes, tt.edges)
			probs := issuesOfType(h, IssueProbabilityError)
			if len(probs) != tt.wantIssues {
				t.Fatalf("probability issues = %d, want %d: %+v", len(probs), tt.wantIssues, probs)
			}
			if tt.wantSubstr != "" && !strings.Contains(probs[0].Message, tt.wantSubstr) {
				t.Errorf("message %q does not contain %q", probs[0].Message, tt.wantSubstr)
			}
		})
	}
}

func TestScoreFormula(t *testing.T) {
	// One error (dangling) = -20; one warning (orphan) = -5.
	nodes := []graph.Node{
		node("a", "", "A"),
		node("lonely", "", "L"),
	}
	edges := []graph.Edge{edge("e1", "a", "ghost")}

	h := Validate(nodes, edges)
	if h.Score != 75 {
		t.Errorf("score = %d, want 75 (100 - 20 - 5)", h.Score)
	}

	// Adding one more error drops exactly 20 more.
	edges = append(edges, edge("e2", "a", "ghost2"))
	h2 := Validate(nodes, edges)
	if h2.Score != h.Score-20 {
		t.Errorf("score after extra error = %d, want %d", h2.Score, h.Score-20)
	}
}

func TestScoreFloorsAtZero(t *testing.T) {
	nodes := []graph.Node{node("a", "", "A")}
	var edges []graph.Edge
	for i := 0; i < 10; i++ {
		edges = append(edges, edge(string(rune('p'+i)), "a", "nowhere"))
	}
	h := Validate(nodes, edges)
	if h.Score != 0 {
		t.Errorf("score = %d, want floor of 0", h.Score)
	}
}

func TestValidateDeterministic(t *testing.T) {
	nodes := []graph.Node{
		node("c", "", ""), node("a", "", ""), node("b", "", ""),
		node("orphan", "", "O"),
	}
	edges := []graph.Edge{
		edge("e3", "c", "a"),
		edge("e1", "a", "b"),
		edge("e2", "b", "c"),
		edge("e4", "a", "b"),
	}

	h1 := Validate(nodes, edges)
	h2 := Validate(nodes, edges)
	if !reflect.DeepEqual(h1, h2) {
		t.Error("Validate must be deterministic for identical input")
	}
	for _, i := range h1.Issues {
		if i.ID == "" {
			t.Errorf("issue %v has empty ID", i.Type)
		}
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	nodes := []graph.Node{node("a", "", ""), node("b", "", "B")}
	edges := []graph.Edge{edge("e1", "a", "b")}
	before := make([]graph.Node, len(nodes))
	copy(before, nodes)

	Validate(nodes, edges)
	if !reflect.DeepEqual(nodes, before) {
		t.Error("Validate must not mutate its input")
	}
}
