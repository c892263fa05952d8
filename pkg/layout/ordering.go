package layout

import "slices"

// orderLayers sorts each layer with the median heuristic: every node is
// keyed by the median index of its parents within the previous
// populated layer, then the layer is sorted by (median, id). Nodes
// without parents in the previous layer key at 0. The pass runs once,
// top to bottom - earlier layers are already final when a later layer
// is ordered.
func orderLayers(mv []Node, layers map[string]int, parents map[string][]string) map[int][]string {
	grouped := make(map[int][]string)
	for _, n := range mv {
		l := layers[n.ID]
		grouped[l] = append(grouped[l], n.ID)
	}

	var prevPos map[string]int
	for _, layer := range sortedLayers(grouped) {
		nodeIDs := grouped[layer]

		medians := make(map[string]float64, len(nodeIDs))
		for _, id := range nodeIDs {
			medians[id] = medianParentIndex(parents[id], prevPos)
		}
		slices.SortFunc(nodeIDs, func(a, b string) int {
			if medians[a] != medians[b] {
				if medians[a] < medians[b] {
					return -1
				}
				return 1
			}
			return cmpString(a, b)
		})

		prevPos = make(map[string]int, len(nodeIDs))
		for i, id := range nodeIDs {
			prevPos[id] = i
		}
	}
	return grouped
}

// medianParentIndex computes the median of the node's parent positions
// within the previous layer. Parents outside that layer do not count;
// no qualifying parents yields 0. An even count takes the mean of the
// two middle positions.
func medianParentIndex(parentIDs []string, prevPos map[string]int) float64 {
	var idx []int
	for _, p := range parentIDs {
		if pos, ok := prevPos[p]; ok {
			idx = append(idx, pos)
		}
	}
	if len(idx) == 0 {
		return 0
	}
	slices.Sort(idx)
	mid := len(idx) / 2
	if len(idx)%2 == 1 {
		return float64(idx[mid])
	}
	return float64(idx[mid-1]+idx[mid]) / 2
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
