package io

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/deciviz/deciviz/pkg/graph"
)

const sampleJSON = `{
  "nodes": [
    {"id": "n1", "kind": "goal", "label": "Ship it"},
    {"id": "n2", "kind": "decision_node", "label": "How"},
    {"id": "n3", "kind": "widget", "label": "Mystery"}
  ],
  "edges": [
    {"id": "e1", "source": "n1", "target": "n2"}
  ]
}`

func TestReadJSON(t *testing.T) {
	g, unrecognized, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if len(g.Nodes) != 3 || len(g.Edges) != 1 {
		t.Fatalf("got %d nodes / %d edges, want 3 / 1", len(g.Nodes), len(g.Edges))
	}
	if g.Nodes[1].Kind != graph.KindDecision {
		t.Errorf("n2 kind = %q, want decision (alias normalized)", g.Nodes[1].Kind)
	}
	if g.Nodes[2].Kind != graph.KindFactor {
		t.Errorf("n3 kind = %q, want factor fallback", g.Nodes[2].Kind)
	}
	if !reflect.DeepEqual(unrecognized, []string{"n3"}) {
		t.Errorf("unrecognized = %v, want [n3]", unrecognized)
	}
}

func TestReadJSONErrors(t *testing.T) {
	if _, _, err := ReadJSON(strings.NewReader("{not json")); err == nil {
		t.Error("malformed JSON should fail")
	}
	if _, _, err := ReadJSON(strings.NewReader(`{"nodes":[{"kind":"goal"}]}`)); err == nil {
		t.Error("node without id should fail")
	}
}

func TestRoundTrip(t *testing.T) {
	g, _, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	again, unrecognized, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(unrecognized) != 0 {
		t.Errorf("kinds were normalized on first read, got unrecognized %v", unrecognized)
	}
	if !reflect.DeepEqual(again, g) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", again, g)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing file should fail")
	}
}
