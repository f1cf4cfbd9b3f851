package explorer

import (
	"context"
	"fmt"

	"wikigraph/pkg/common"
	"wikigraph/pkg/logger"
)

// Expand grows an existing graph by extraDepth levels of BFS below nodeID.
// The input graph is treated as a read-only snapshot; all changes land in the
// returned deep copy, so callers may keep reading the prior graph while the
// expansion runs.
//
// Merge rules: nodes already present keep their original depth and only gain
// new edges; new nodes enter at the target's depth plus their level offset,
// staying in the original root's coordinate system; the node cap from the
// original build still applies. Edges that existed before this call never
// gain weight, so expanding the same node twice over unchanged content leaves
// the graph exactly as one expansion did.
func (e *Explorer) Expand(ctx context.Context, g *common.Graph, nodeID string, extraDepth int) (*common.Graph, error) {
	target := g.Node(nodeID)
	if target == nil {
		return nil, fmt.Errorf("expand %q: %w", nodeID, ErrNodeNotInGraph)
	}
	if extraDepth < 1 {
		return nil, fmt.Errorf("expand %q: extra depth must be at least 1, got %d", nodeID, extraDepth)
	}

	ctx, cancel := context.WithTimeout(ctx, e.buildBudget)
	defer cancel()

	out := g.Clone()

	preexisting := make(map[common.EdgeKey]struct{}, len(out.Edges))
	for key := range out.Edges {
		preexisting[key] = struct{}{}
	}

	e.runBFS(ctx, out, []string{nodeID}, target.Depth, target.Depth+extraDepth, preexisting)
	e.applyScores(out)

	logger.Info("[Explorer] expansion finished",
		"root", out.Root,
		"target", nodeID,
		"nodes_added", out.NodeCount()-g.NodeCount(),
		"edges_added", out.EdgeCount()-g.EdgeCount())
	return out, nil
}
