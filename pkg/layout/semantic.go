package layout

import (
	"maps"
	"slices"
	"time"

	"github.com/deciviz/deciviz/pkg/graph"
)

// Semantic computes a kind-aware layered layout.
//
// Locked nodes and nodes listed in preserveIDs are fixed: they are
// excluded from layering entirely and never appear in the returned
// position map. Edges touching fixed or unknown nodes are ignored for
// layering purposes.
//
// The algorithm runs in five passes: BFS layering from the roots
// (goals plus zero-in-degree nodes), an outcome-last override, a
// single-pass median ordering within each layer, coordinate
// assignment, and risk placement. Every final coordinate is snapped to
// policy.Grid.
func Semantic(nodes []Node, edges []Edge, policy Policy, preserveIDs []string) Result {
	start := time.Now()

	mv := movable(nodes, preserveIDs)
	if len(mv) == 0 {
		return Result{Positions: map[string]Point{}}
	}

	ids := make(map[string]bool, len(mv))
	for _, n := range mv {
		ids[n.ID] = true
	}

	// Adjacency restricted to movable nodes.
	children := make(map[string][]string)
	parents := make(map[string][]string)
	for _, e := range edges {
		if !ids[e.Source] || !ids[e.Target] || e.Source == e.Target {
			continue
		}
		children[e.Source] = append(children[e.Source], e.Target)
		parents[e.Target] = append(parents[e.Target], e.Source)
	}

	layers := assignLayers(mv, children, parents, policy)
	ordered := orderLayers(mv, layers, parents)
	positions := assignCoordinates(ordered, policy)
	placeRisks(mv, edges, positions, policy)

	for id, p := range positions {
		positions[id] = snapPoint(p, policy.Grid)
	}

	return Result{Positions: positions, Duration: time.Since(start)}
}

// assignLayers runs the breadth-first layering pass. Each node settles
// at the deepest layer any path from a root implies (longest path), so
// a node reachable both directly and through an intermediary sits below
// the intermediary. Disconnected nodes stay at layer 0.
func assignLayers(mv []Node, children, parents map[string][]string, policy Policy) map[string]int {
	layers := make(map[string]int, len(mv))

	var queue []string
	for _, n := range mv {
		isRoot := len(parents[n.ID]) == 0
		if policy.GoalFirst && n.Kind == graph.KindGoal {
			isRoot = true
		}
		if isRoot {
			layers[n.ID] = 0
			queue = append(queue, n.ID)
		}
	}

	maxDepth := len(mv) // cycles cannot push a node deeper than this
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range children[curr] {
			next := layers[curr] + 1
			if next > maxDepth {
				continue
			}
			if next > layers[child] {
				layers[child] = next
				queue = append(queue, child)
			}
		}
	}

	if policy.OutcomeLast {
		// maxLayer is taken over non-outcome nodes so outcomes land
		// strictly below everything else.
		max, found := 0, false
		byID := make(map[string]Node, len(mv))
		for _, n := range mv {
			byID[n.ID] = n
			if n.Kind != graph.KindOutcome {
				found = true
				if layers[n.ID] > max {
					max = layers[n.ID]
				}
			}
		}
		if found {
			for _, n := range mv {
				if n.Kind == graph.KindOutcome {
					layers[n.ID] = max + 1
				}
			}
		}
	}

	return layers
}

// assignCoordinates maps (layer, within-layer index) to canvas
// coordinates. The layer drives the primary axis (x for LR, y for TB);
// the within-layer index drives the other.
func assignCoordinates(ordered map[int][]string, policy Policy) map[string]Point {
	positions := make(map[string]Point)
	stepPrimary := nodeWidth + policy.Spacing.Column
	stepSecondary := nodeHeight + policy.Spacing.Row

	for layer, nodeIDs := range ordered {
		for idx, id := range nodeIDs {
			primary := padding + float64(layer)*stepPrimary
			secondary := padding + float64(idx)*stepSecondary
			if policy.Direction == DirectionTB {
				positions[id] = Point{X: padding + float64(idx)*stepPrimary, Y: padding + float64(layer)*stepSecondary}
			} else {
				positions[id] = Point{X: primary, Y: secondary}
			}
		}
	}
	return positions
}

// placeRisks overrides the layer-derived position of risk nodes,
// moving each next to its first connected neighbor. Risks whose
// neighbor has no computed position (fixed or preserved) keep their
// layer position.
func placeRisks(mv []Node, edges []Edge, positions map[string]Point, policy Policy) {
	for _, n := range mv {
		if n.Kind != graph.KindRisk {
			continue
		}
		neighbor, ok := firstNeighbor(n.ID, edges)
		if !ok {
			continue
		}
		peer, ok := positions[neighbor]
		if !ok {
			continue
		}
		self := positions[n.ID]

		switch policy.Risk {
		case RiskSameColumn:
			// Share the primary axis with the peer exactly.
			if policy.Direction == DirectionTB {
				positions[n.ID] = Point{X: self.X, Y: peer.Y}
			} else {
				positions[n.ID] = Point{X: peer.X, Y: self.Y}
			}
		default: // RiskAdjacent
			// Sit beside the peer, offset orthogonally to the flow by
			// half the spacing value.
			if policy.Direction == DirectionTB {
				positions[n.ID] = Point{X: peer.X + policy.Spacing.Column/2, Y: peer.Y}
			} else {
				positions[n.ID] = Point{X: peer.X, Y: peer.Y + policy.Spacing.Row/2}
			}
		}
	}
}

// firstNeighbor returns the other endpoint of the first edge touching
// the node, in edge input order.
func firstNeighbor(id string, edges []Edge) (string, bool) {
	for _, e := range edges {
		if e.Source == id && e.Target != id {
			return e.Target, true
		}
		if e.Target == id && e.Source != id {
			return e.Source, true
		}
	}
	return "", false
}

// sortedLayers returns the populated layer indices in ascending order.
func sortedLayers(ordered map[int][]string) []int {
	return slices.Sorted(maps.Keys(ordered))
}
