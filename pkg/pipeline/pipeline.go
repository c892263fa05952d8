// Package pipeline provides the core processing pipeline for Deciviz.
//
// This package implements the complete validate → repair → layout
// pipeline that can be used by CLI, API, and worker components. By
// centralizing this logic, we ensure consistent behavior across all
// entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Validate: Run the issue detectors and compute the health report
//  2. Repair: Optionally apply every suggested fix (quick-fix all)
//  3. Layout: Compute node positions with the selected preset
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Preset:  layout.PresetSemantic,
//	    Spacing: layout.SpacingNormal,
//	    FixAll:  true,
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	positions := result.Layout.Positions
//
// Run individual stages:
//
//	// Validate only
//	health, err := runner.Validate(ctx, g, opts)
//
//	// Layout with an existing graph
//	res, err := runner.ComputeLayout(ctx, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/deciviz/deciviz/pkg/cache"
	"github.com/deciviz/deciviz/pkg/graph"
	"github.com/deciviz/deciviz/pkg/layout"
	"github.com/deciviz/deciviz/pkg/repair"
	"github.com/deciviz/deciviz/pkg/validate"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

// DefaultPreset is the layout engine used when none is requested.
const DefaultPreset = layout.PresetSemantic

// DefaultSpacing is the spacing tier used when none is requested.
const DefaultSpacing = layout.SpacingNormal

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the processing pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// GraphID labels log lines and hook events. Optional.
	GraphID string `json:"graph_id,omitempty"`

	// Repair options
	FixAll bool `json:"fix_all,omitempty"`

	// Layout options
	Preset      layout.Preset      `json:"preset,omitempty"`
	Spacing     layout.SpacingTier `json:"spacing,omitempty"`
	PreserveIDs []string           `json:"preserve_ids,omitempty"`
	Policy      layout.Overrides   `json:"policy,omitempty"`

	// Refresh bypasses cached stage results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger        `json:"-"`
	IDGen  repair.IDGenerator `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the processed graph. With FixAll it carries the
	// repaired nodes and edges, otherwise the input unchanged.
	Graph graph.Graph

	// GraphHash is the content hash of the processed graph.
	GraphHash string

	// Health is the validation report for the processed graph.
	Health validate.Health

	// FixedCount is the number of fixes applied (zero without FixAll).
	FixedCount int

	// Layout contains the computed positions.
	Layout layout.Result

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	ValidateTime time.Duration
	RepairTime   time.Duration
	LayoutTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ValidateHit bool // Whether the health report came from cache
	LayoutHit   bool // Whether the layout came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Preset == "" {
		o.Preset = DefaultPreset
	}
	if !o.Preset.Valid() {
		return fmt.Errorf("invalid preset: %q (must be one of: semantic, grid, hierarchy, flow)", o.Preset)
	}

	if o.Spacing == "" {
		o.Spacing = DefaultSpacing
	}
	switch o.Spacing {
	case layout.SpacingCompact, layout.SpacingNormal, layout.SpacingSpacious:
	default:
		return fmt.Errorf("invalid spacing: %q (must be one of: compact, normal, spacious)", o.Spacing)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	merged := layout.MergePolicy(o.Policy)
	return cache.LayoutKeyOpts{
		Preset:      string(o.Preset),
		Spacing:     string(o.Spacing),
		Direction:   string(merged.Direction),
		Grid:        merged.Grid,
		Column:      merged.Spacing.Column,
		Row:         merged.Spacing.Row,
		Risk:        string(merged.Risk),
		OutcomeLast: merged.OutcomeLast,
		GoalFirst:   merged.GoalFirst,
		PreserveIDs: o.PreserveIDs,
	}
}

// layoutOptions projects the pipeline options onto the layout engine.
func (o *Options) layoutOptions() layout.Options {
	return layout.Options{
		Preset:      o.Preset,
		Spacing:     o.Spacing,
		PreserveIDs: o.PreserveIDs,
		Policy:      o.Policy,
	}
}
