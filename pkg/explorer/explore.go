package explorer

import (
	"context"
	"errors"
	"fmt"

	"wikigraph/pkg/common"
	"wikigraph/pkg/logger"
)

// Explore builds a bounded breadth-first graph rooted at rootTitle. All nodes
// at depth d are fully resolved before any node at depth d+1 is discovered,
// so depth assignment is monotonic and insertion order within a level follows
// discovery order. The call returns once the graph is bounded by maxDepth and
// maxNodes, or once the build budget or ctx runs out, in which case the best
// graph so far is returned rather than an error.
//
// A root that does not resolve yields a single-node graph with the root
// flagged unresolved, not an error.
func (e *Explorer) Explore(ctx context.Context, rootTitle string, maxDepth, maxNodes int) (*common.Graph, error) {
	rootID := common.CanonicalID(rootTitle)
	if rootID == "" {
		return nil, errors.New("explore: empty root title")
	}
	if maxDepth < 0 || maxNodes < 1 {
		return nil, fmt.Errorf("explore %q: invalid bounds depth=%d nodes=%d", rootTitle, maxDepth, maxNodes)
	}

	ctx, cancel := context.WithTimeout(ctx, e.buildBudget)
	defer cancel()

	g := common.NewGraph(rootID, maxNodes)
	root := g.AddNode(&common.Node{ID: rootID, Title: common.TitleFromID(rootID), Depth: 0})

	content, err := e.fetch(ctx, rootID)
	if err != nil {
		logger.Warn("[Explorer] root did not resolve", "root", rootID, "error", err)
		root.Unresolved = true
		e.applyScores(g)
		return g, nil
	}
	enrichNode(root, content)

	e.runBFS(ctx, g, []string{rootID}, 0, maxDepth, nil)
	e.applyScores(g)

	logger.Info("[Explorer] exploration finished",
		"root", rootID,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"max_depth", g.MaxDepth())
	return g, nil
}

// runBFS advances the graph one depth level at a time: fetch the whole
// frontier, splice every node's outlinks, then move on. An outlink to an
// already-placed node only records an edge, which is what terminates cycles.
// Once the node cap is hit no new nodes are added but edges between existing
// nodes keep accumulating, so the graph never holds a dangling edge.
//
// Edges listed in preexisting are never touched; expansion passes the edge
// set as it stood before the call so repeating an expansion cannot inflate
// weights.
func (e *Explorer) runBFS(ctx context.Context, g *common.Graph, frontier []string, depth, maxDepth int, preexisting map[common.EdgeKey]struct{}) {
	for len(frontier) > 0 && depth < maxDepth {
		if ctx.Err() != nil {
			logger.Warn("[Explorer] build stopped early",
				"root", g.Root, "depth", depth, "nodes", g.NodeCount(), "reason", ctx.Err())
			return
		}

		contents := e.fetchBatch(ctx, frontier)

		var next []string
		for _, id := range frontier {
			content, ok := contents[id]
			if !ok {
				if n := g.Node(id); n != nil && n.Summary == "" {
					n.Unresolved = true
				}
				continue
			}
			enrichNode(g.Node(id), content)

			links := content.Outlinks
			if e.linksPerNode > 0 && len(links) > e.linksPerNode {
				links = links[:e.linksPerNode]
			}
			for _, title := range links {
				outID := common.CanonicalID(title)
				if outID == "" || outID == id {
					continue
				}
				if g.HasNode(outID) {
					recordEdge(g, id, outID, preexisting)
					continue
				}
				if g.AtNodeLimit() {
					continue
				}
				g.AddNode(&common.Node{ID: outID, Title: title, Depth: depth + 1})
				recordEdge(g, id, outID, preexisting)
				next = append(next, outID)
			}
		}

		frontier = next
		depth++
	}
}

func recordEdge(g *common.Graph, from, to string, preexisting map[common.EdgeKey]struct{}) {
	if preexisting != nil {
		if _, ok := preexisting[common.EdgeKey{From: from, To: to}]; ok {
			return
		}
	}
	g.RecordEdge(from, to, common.EdgeKindLink)
}

// enrichNode fills a placeholder node with the metadata from its fetched
// content. Depth, Seq and ID are never touched here.
func enrichNode(n *common.Node, content *common.PageContent) {
	if n == nil || content == nil {
		return
	}
	if content.Title != "" {
		n.Title = content.Title
	}
	n.Summary = content.Summary
	n.URL = content.URL
	n.PageID = content.PageID
	n.ImageURL = content.ImageURL
	n.Unresolved = false
}
