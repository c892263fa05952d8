package layout

import (
	"time"

	"github.com/deciviz/deciviz/pkg/graph"
)

// Approximate node footprint used for coordinate math. Actual rendered
// sizes vary slightly; layout intentionally uses a fixed approximation
// so positions do not depend on label lengths.
const (
	nodeWidth  = 200.0
	nodeHeight = 100.0
	padding    = 50.0 // origin offset from the canvas corner
)

// Node is the layout-specific projection of a graph node. Width and
// Height are advisory (engines use fixed approximations); Locked
// excludes the node from repositioning; Kind drives layering and risk
// placement in the semantic engine.
type Node struct {
	ID     string     `json:"id"`
	Width  float64    `json:"width,omitempty"`
	Height float64    `json:"height,omitempty"`
	Locked bool       `json:"locked,omitempty"`
	Kind   graph.Kind `json:"kind,omitempty"`
}

// Edge is a directed connection between layout nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Point is a computed canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result maps node IDs to their computed positions. Nodes absent from
// Positions (locked or preserved) must keep their current coordinates -
// the caller applies the map as a partial update.
type Result struct {
	Positions map[string]Point `json:"positions"`
	Duration  time.Duration    `json:"duration"`
}

// FromGraph projects graph nodes and edges into their layout shapes.
func FromGraph(nodes []graph.Node, edges []graph.Edge) ([]Node, []Edge) {
	ln := make([]Node, len(nodes))
	for i, n := range nodes {
		ln[i] = Node{ID: n.ID, Locked: n.Locked, Kind: n.Kind}
	}
	le := make([]Edge, len(edges))
	for i, e := range edges {
		le[i] = Edge{Source: e.Source, Target: e.Target}
	}
	return ln, le
}

// snap rounds v to the nearest multiple of grid. A grid of zero or less
// disables snapping.
func snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	steps := int(v/grid + 0.5)
	return float64(steps) * grid
}

// snapPoint snaps both coordinates.
func snapPoint(p Point, grid float64) Point {
	return Point{X: snap(p.X, grid), Y: snap(p.Y, grid)}
}

// movable filters out locked and preserved nodes, keeping input order.
func movable(nodes []Node, preserveIDs []string) []Node {
	preserved := make(map[string]bool, len(preserveIDs))
	for _, id := range preserveIDs {
		preserved[id] = true
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Locked || preserved[n.ID] {
			continue
		}
		out = append(out, n)
	}
	return out
}
