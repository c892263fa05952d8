package layout

import (
	"math"
	"slices"
	"time"
)

// Preset names a layout engine.
type Preset string

// Available presets. Semantic is the default; the others place nodes
// without looking at kinds or edges.
const (
	PresetSemantic  Preset = "semantic"
	PresetGrid      Preset = "grid"
	PresetHierarchy Preset = "hierarchy"
	PresetFlow      Preset = "flow"
)

// Presets lists all valid preset names.
var Presets = []Preset{PresetSemantic, PresetGrid, PresetHierarchy, PresetFlow}

// Valid reports whether p names a known preset.
func (p Preset) Valid() bool {
	return slices.Contains(Presets, p)
}

// SpacingTier scales the policy spacing without restating it.
type SpacingTier string

// Spacing tiers.
const (
	SpacingCompact  SpacingTier = "compact"
	SpacingNormal   SpacingTier = "normal"
	SpacingSpacious SpacingTier = "spacious"
)

// Factor returns the spacing multiplier for the tier (1.0 for unknown
// or empty tiers).
func (t SpacingTier) Factor() float64 {
	switch t {
	case SpacingCompact:
		return 0.75
	case SpacingSpacious:
		return 1.5
	default:
		return 1.0
	}
}

// Options selects and configures an engine run.
type Options struct {
	Preset      Preset      `json:"preset,omitempty"`
	Spacing     SpacingTier `json:"spacing,omitempty"`
	PreserveIDs []string    `json:"preserve_ids,omitempty"`
	Policy      Overrides   `json:"policy,omitempty"`
}

// Compute dispatches to the engine named by opts.Preset (semantic when
// empty) with the spacing tier applied to the policy.
func Compute(nodes []Node, edges []Edge, opts Options) Result {
	policy := MergePolicy(opts.Policy)
	policy.Spacing = policy.Spacing.Scale(opts.Spacing.Factor())

	switch opts.Preset {
	case PresetGrid:
		return Grid(nodes, policy.Spacing, policy.Grid)
	case PresetHierarchy:
		return Hierarchy(nodes, policy.Spacing, policy.Grid)
	case PresetFlow:
		return Flow(nodes, policy.Spacing, policy.Grid)
	default:
		return Semantic(nodes, edges, policy, opts.PreserveIDs)
	}
}

// Grid places nodes in a square-ish grid, sorted by ID.
func Grid(nodes []Node, spacing Spacing, grid float64) Result {
	start := time.Now()
	mv := movable(nodes, nil)
	if len(mv) == 0 {
		return Result{Positions: map[string]Point{}}
	}

	ids := make([]string, len(mv))
	for i, n := range mv {
		ids[i] = n.ID
	}
	slices.Sort(ids)

	cols := int(math.Ceil(math.Sqrt(float64(len(ids)))))
	return Result{
		Positions: bucketPositions(ids, cols, spacing, grid),
		Duration:  time.Since(start),
	}
}

// Hierarchy places nodes row-major across four fixed columns, in input
// order.
func Hierarchy(nodes []Node, spacing Spacing, grid float64) Result {
	start := time.Now()
	mv := movable(nodes, nil)
	if len(mv) == 0 {
		return Result{Positions: map[string]Point{}}
	}

	ids := make([]string, len(mv))
	for i, n := range mv {
		ids[i] = n.ID
	}
	return Result{
		Positions: bucketPositions(ids, 4, spacing, grid),
		Duration:  time.Since(start),
	}
}

// Flow places nodes row-major with a square-root-derived column count,
// in input order. Compared to Grid it keeps insertion locality instead
// of sorting.
func Flow(nodes []Node, spacing Spacing, grid float64) Result {
	start := time.Now()
	mv := movable(nodes, nil)
	if len(mv) == 0 {
		return Result{Positions: map[string]Point{}}
	}

	ids := make([]string, len(mv))
	for i, n := range mv {
		ids[i] = n.ID
	}
	cols := int(math.Round(math.Sqrt(float64(len(ids)))))
	if cols < 1 {
		cols = 1
	}
	return Result{
		Positions: bucketPositions(ids, cols, spacing, grid),
		Duration:  time.Since(start),
	}
}

// bucketPositions lays IDs out row-major in the given column count.
func bucketPositions(ids []string, cols int, spacing Spacing, grid float64) map[string]Point {
	positions := make(map[string]Point, len(ids))
	for i, id := range ids {
		col := i % cols
		row := i / cols
		p := Point{
			X: padding + float64(col)*(nodeWidth+spacing.Column),
			Y: padding + float64(row)*(nodeHeight+spacing.Row),
		}
		positions[id] = snapPoint(p, grid)
	}
	return positions
}
