package explorer

import "wikigraph/pkg/common"

// Score computes the importance signal for every node: in plus out degree,
// normalized by the maximum degree observed so all values land in [0,1]. The
// root is always pinned to 1.0. Recomputed over the whole graph on every
// build and expand; the graphs are capped small enough that incremental
// updates would buy nothing.
func Score(g *common.Graph) map[string]float64 {
	degrees := make(map[string]int, len(g.Nodes))
	for key := range g.Edges {
		degrees[key.From]++
		degrees[key.To]++
	}

	maxDegree := 0
	for _, d := range degrees {
		if d > maxDegree {
			maxDegree = d
		}
	}

	scores := make(map[string]float64, len(g.Nodes))
	for id := range g.Nodes {
		if maxDegree > 0 {
			scores[id] = float64(degrees[id]) / float64(maxDegree)
		} else {
			scores[id] = 0
		}
	}
	if _, ok := g.Nodes[g.Root]; ok {
		scores[g.Root] = 1.0
	}
	return scores
}

// applyScores writes the current scores into the nodes' Importance field.
func (e *Explorer) applyScores(g *common.Graph) {
	for id, score := range Score(g) {
		g.Node(id).Importance = score
	}
}
