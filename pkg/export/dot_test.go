package export

import (
	"strings"
	"testing"

	"github.com/deciviz/deciviz/pkg/graph"
)

func sample() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "n1", Kind: graph.KindGoal, Label: "Ship it"},
			{ID: "n2", Kind: graph.KindDecision, Label: "How"},
			{ID: "n3", Kind: graph.KindRisk},
		},
		Edges: []graph.Edge{
			{ID: "e1", Source: "n1", Target: "n2", Data: graph.Metadata{"confidence": 0.75}},
			{ID: "e2", Source: "n2", Target: "n3"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"n1" [label="Ship it"`,
		"shape=diamond",
		"shape=hexagon",
		`label="Node n3"`,
		`"n1" -> "n2";`,
		`"n2" -> "n3";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTConfidenceLabels(t *testing.T) {
	dot := ToDOT(sample(), Options{ShowConfidence: true})

	if !strings.Contains(dot, `"n1" -> "n2" [label="75%"];`) {
		t.Errorf("expected confidence label on e1:\n%s", dot)
	}
	// Edges without confidence stay unlabeled.
	if !strings.Contains(dot, `"n2" -> "n3";`) {
		t.Errorf("expected plain edge for e2:\n%s", dot)
	}
}

func TestToDOTRankdir(t *testing.T) {
	dot := ToDOT(sample(), Options{Rankdir: "LR"})
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Errorf("expected rankdir=LR:\n%s", dot)
	}
}

func TestToDOTUnknownKindFallsBack(t *testing.T) {
	g := graph.Graph{Nodes: []graph.Node{{ID: "x", Kind: "mystery", Label: "X"}}}
	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, "shape=ellipse") {
		t.Errorf("unknown kind should use the factor style:\n%s", dot)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range Formats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", f, err)
		}
	}
	if err := ValidateFormat("png"); err == nil {
		t.Error("unsupported format should fail")
	}
}
