package explorer

import (
	"sort"

	"wikigraph/pkg/common"
)

// GraphMetrics summarizes the shape of a built graph.
type GraphMetrics struct {
	NodeCount         int          `json:"node_count"`
	EdgeCount         int          `json:"edge_count"`
	MaxDepth          int          `json:"max_depth"`
	Density           float64      `json:"density"`
	AvgDegree         float64      `json:"avg_degree"`
	MaxDegree         int          `json:"max_degree"`
	DepthDistribution map[int]int  `json:"depth_distribution"`
	TopNodes          []RankedNode `json:"top_nodes"`
}

// RankedNode is one entry of the most-connected-nodes listing.
type RankedNode struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Importance float64 `json:"importance"`
	Degree     int     `json:"degree"`
}

const topNodeCount = 10

// Metrics derives summary statistics from a graph snapshot: directed density,
// degree stats, how many nodes sit at each depth and the ten most important
// nodes. Ties in importance keep discovery order.
func Metrics(g *common.Graph) *GraphMetrics {
	n := g.NodeCount()
	m := &GraphMetrics{
		NodeCount:         n,
		EdgeCount:         g.EdgeCount(),
		MaxDepth:          g.MaxDepth(),
		DepthDistribution: make(map[int]int),
	}

	degrees := make(map[string]int, n)
	for key := range g.Edges {
		degrees[key.From]++
		degrees[key.To]++
	}

	totalDegree := 0
	for _, d := range degrees {
		totalDegree += d
		if d > m.MaxDegree {
			m.MaxDegree = d
		}
	}
	if n > 1 {
		m.Density = float64(m.EdgeCount) / float64(n*(n-1))
	}
	if n > 0 {
		m.AvgDegree = float64(totalDegree) / float64(n)
	}

	for _, node := range g.Nodes {
		m.DepthDistribution[node.Depth]++
	}

	nodes := g.NodesInOrder()
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Importance > nodes[j].Importance
	})
	for i := 0; i < len(nodes) && i < topNodeCount; i++ {
		m.TopNodes = append(m.TopNodes, RankedNode{
			ID:         nodes[i].ID,
			Title:      nodes[i].Title,
			Importance: nodes[i].Importance,
			Degree:     degrees[nodes[i].ID],
		})
	}

	return m
}
