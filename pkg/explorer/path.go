package explorer

import (
	"context"
	"errors"
	"fmt"

	"wikigraph/pkg/common"
	"wikigraph/pkg/logger"
)

// ErrPathNotFound marks a path search that exhausted its depth bound without
// reaching the target article.
var ErrPathNotFound = errors.New("no link path found")

// ShortestPath searches breadth-first over live outlinks for a link chain
// from one article to another, up to maxDepth hops. It returns the canonical
// titles along the chain, endpoints included. BFS over an unweighted link
// graph makes the first chain found a shortest one.
//
// The search shares the Explorer's cache and fetch ceiling, and the build
// budget applies; running out of budget before reaching the target reports
// ErrPathNotFound.
func (e *Explorer) ShortestPath(ctx context.Context, fromTitle, toTitle string, maxDepth int) ([]string, error) {
	fromID := common.CanonicalID(fromTitle)
	toID := common.CanonicalID(toTitle)
	if fromID == "" || toID == "" {
		return nil, errors.New("path: empty article title")
	}
	if fromID == toID {
		return []string{common.TitleFromID(fromID)}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.buildBudget)
	defer cancel()

	// parent[id] is the article whose outlinks first reached id.
	parent := map[string]string{fromID: ""}
	frontier := []string{fromID}

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		if ctx.Err() != nil {
			break
		}
		contents := e.fetchBatch(ctx, frontier)

		var next []string
		for _, id := range frontier {
			content, ok := contents[id]
			if !ok {
				continue
			}
			for _, title := range content.Outlinks {
				outID := common.CanonicalID(title)
				if outID == "" {
					continue
				}
				if _, seen := parent[outID]; seen {
					continue
				}
				parent[outID] = id
				if outID == toID {
					path := assemblePath(parent, toID)
					logger.Info("[Explorer] path found",
						"from", fromID, "to", toID, "hops", len(path)-1)
					return path, nil
				}
				next = append(next, outID)
			}
		}
		frontier = next
	}

	return nil, fmt.Errorf("path %q -> %q: %w", fromTitle, toTitle, ErrPathNotFound)
}

func assemblePath(parent map[string]string, endID string) []string {
	var reversed []string
	for id := endID; id != ""; id = parent[id] {
		reversed = append(reversed, common.TitleFromID(id))
	}
	path := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}
