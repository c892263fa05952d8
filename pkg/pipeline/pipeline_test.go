package pipeline

import (
	"context"
	"testing"

	"github.com/deciviz/deciviz/pkg/cache"
	"github.com/deciviz/deciviz/pkg/graph"
	"github.com/deciviz/deciviz/pkg/layout"
	"github.com/deciviz/deciviz/pkg/repair"
	"github.com/deciviz/deciviz/pkg/validate"
)

func messyGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "n1", Kind: graph.KindGoal, Label: "Ship"},
			{ID: "n2", Kind: graph.KindDecision, Label: "How"},
			{ID: "n3", Kind: graph.KindOption}, // missing label
		},
		Edges: []graph.Edge{
			{ID: "e1", Source: "n1", Target: "n2"},
			{ID: "e2", Source: "n2", Target: "n3"},
			{ID: "e3", Source: "n2", Target: "n3"}, // duplicate
		},
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if opts.Preset != layout.PresetSemantic {
		t.Errorf("Preset = %q, want semantic", opts.Preset)
	}
	if opts.Spacing != layout.SpacingNormal {
		t.Errorf("Spacing = %q, want normal", opts.Spacing)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should succeed: %v", err)
	}
}

func TestOptionsRejectsInvalidValues(t *testing.T) {
	opts := Options{Preset: "circular"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid preset should fail validation")
	}

	opts = Options{Spacing: "huge"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid spacing should fail validation")
	}
}

func TestLayoutKeyOptsReflectPolicy(t *testing.T) {
	dir := layout.DirectionTB
	a := Options{Preset: layout.PresetSemantic}
	b := Options{Preset: layout.PresetSemantic, Policy: layout.Overrides{Direction: &dir}}

	keyer := cache.NewDefaultKeyer()
	if keyer.LayoutKey("h", a.LayoutKeyOpts()) == keyer.LayoutKey("h", b.LayoutKeyOpts()) {
		t.Error("policy overrides must change the layout cache key")
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer r.Close()

	g := messyGraph()
	result, err := r.Execute(ctx, g, Options{GraphID: "g1"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Health.Status != validate.StatusWarnings {
		t.Errorf("Status = %q, want warnings", result.Health.Status)
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if len(result.Layout.Positions) != 3 {
		t.Errorf("positions = %d, want 3", len(result.Layout.Positions))
	}
	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 3 {
		t.Errorf("Stats = %+v, want 3 nodes / 3 edges", result.Stats)
	}
	if result.CacheInfo.ValidateHit || result.CacheInfo.LayoutHit {
		t.Error("first run should not hit the cache")
	}

	// Second run over the same graph hits both stage caches.
	again, err := r.Execute(ctx, g, Options{GraphID: "g1"})
	if err != nil {
		t.Fatalf("Execute (second): %v", err)
	}
	if !again.CacheInfo.ValidateHit {
		t.Error("second run should hit the health cache")
	}
	if !again.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if again.Health.Score != result.Health.Score {
		t.Errorf("cached score %d != computed score %d", again.Health.Score, result.Health.Score)
	}
}

func TestRunnerExecuteFixAll(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer r.Close()

	result, err := r.Execute(ctx, messyGraph(), Options{
		FixAll: true,
		IDGen:  repair.SequentialGenerator(),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.FixedCount != 2 {
		t.Errorf("FixedCount = %d, want 2 (duplicate edge, missing label)", result.FixedCount)
	}
	if len(result.Graph.Edges) != 2 {
		t.Errorf("edges after fix = %d, want 2", len(result.Graph.Edges))
	}
	if result.Health.Status != validate.StatusHealthy {
		t.Errorf("Status after fix = %q, want healthy", result.Health.Status)
	}
	if result.Stats.EdgeCount != 2 {
		t.Errorf("Stats.EdgeCount = %d, want post-repair count", result.Stats.EdgeCount)
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer r.Close()

	g := messyGraph()
	if _, err := r.Execute(ctx, g, Options{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	result, err := r.Execute(ctx, g, Options{Refresh: true})
	if err != nil {
		t.Fatalf("Execute (refresh): %v", err)
	}
	if result.CacheInfo.ValidateHit || result.CacheInfo.LayoutHit {
		t.Error("refresh should bypass cached stage results")
	}
}

func TestRunnerValidateStage(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer r.Close()

	g := graph.Graph{
		Nodes: []graph.Node{{ID: "n1", Kind: graph.KindGoal, Label: "Ship"}},
	}
	health, err := r.Validate(ctx, g, Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if health.Score != 100 {
		t.Errorf("Score = %d, want 100", health.Score)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Error("NewRunner should fill in nil collaborators")
	}

	// Null cache still lets the pipeline run.
	result, err := r.Execute(context.Background(), messyGraph(), Options{})
	if err != nil {
		t.Fatalf("Execute with null cache: %v", err)
	}
	if len(result.Layout.Positions) == 0 {
		t.Error("layout should be computed without a cache")
	}
}
