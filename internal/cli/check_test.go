package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/deciviz/deciviz/pkg/graph"
	"github.com/deciviz/deciviz/pkg/validate"
)

func TestCountFixable(t *testing.T) {
	fix := &graph.Action{Type: graph.ActionRemoveEdge, TargetID: "e1"}
	issues := []validate.Issue{
		{Type: validate.IssueDanglingEdge, SuggestedFix: fix},
		{Type: validate.IssueProbabilityError},
		{Type: validate.IssueMissingLabel, SuggestedFix: fix},
	}

	if got := countFixable(issues); got != 2 {
		t.Errorf("countFixable() = %d, want 2", got)
	}
	if got := countFixable(nil); got != 0 {
		t.Errorf("countFixable(nil) = %d, want 0", got)
	}
}

func TestLoadGraphNormalizesKinds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	data := `{"nodes":[{"id":"n1","kind":"decision_node","label":"Pick"},{"id":"n2","kind":"mystery"}],"edges":[]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := newLogger(&buf, log.WarnLevel)

	g, err := loadGraph(path, logger)
	if err != nil {
		t.Fatalf("loadGraph() error: %v", err)
	}

	if g.Nodes[0].Kind != graph.KindDecision {
		t.Errorf("normalized kind = %q, want %q", g.Nodes[0].Kind, graph.KindDecision)
	}
	if g.Nodes[1].Kind != graph.KindFactor {
		t.Errorf("fallback kind = %q, want %q", g.Nodes[1].Kind, graph.KindFactor)
	}
	if !bytes.Contains(buf.Bytes(), []byte("n2")) {
		t.Error("unrecognized kind should be logged as a warning")
	}
}

func TestLoadGraphMissingFile(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.WarnLevel)

	if _, err := loadGraph(filepath.Join(t.TempDir(), "nope.json"), logger); err == nil {
		t.Error("expected error for missing file")
	}
}
