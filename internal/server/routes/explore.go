package routes

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"wikigraph/internal/server/middleware"
	"wikigraph/pkg/common"
	"wikigraph/pkg/explorer"
	"wikigraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	defaultDepth    = 1
	maxDepthAllowed = 3
	defaultMaxNodes = 30
	maxNodesAllowed = 200
)

func boundedQueryInt(c echo.Context, name string, def, min, max int) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < min || parsed > max {
		return 0, false
	}
	return parsed, true
}

// ExploreHandler builds a fresh graph from a root article.
func ExploreHandler(c echo.Context) error {
	type exploreResponse struct {
		Message  string        `json:"message,omitempty"`
		Graph    *common.Graph `json:"graph,omitempty"`
		Root     string        `json:"root,omitempty"`
		Duration int64         `json:"duration_ms,omitempty"`
	}

	cc := c.(*middleware.AppContext)

	title, err := url.PathUnescape(c.Param("title"))
	if err != nil || title == "" {
		return c.JSON(http.StatusBadRequest, exploreResponse{Message: "Invalid article title"})
	}

	depth, ok := boundedQueryInt(c, "depth", defaultDepth, 0, maxDepthAllowed)
	if !ok {
		return c.JSON(http.StatusBadRequest, exploreResponse{Message: "depth must be between 0 and 3"})
	}
	maxNodes, ok := boundedQueryInt(c, "max_nodes", defaultMaxNodes, 1, maxNodesAllowed)
	if !ok {
		return c.JSON(http.StatusBadRequest, exploreResponse{Message: "max_nodes must be between 1 and 200"})
	}

	start := time.Now()
	g, err := cc.App.Explorer.Explore(c.Request().Context(), title, depth, maxNodes)
	if err != nil {
		logger.Error("[Routes] Exploration failed", "title", title, "err", err)
		return c.JSON(http.StatusInternalServerError, exploreResponse{Message: "Exploration failed"})
	}

	return c.JSON(http.StatusOK, exploreResponse{
		Graph:    g,
		Root:     g.Root,
		Duration: time.Since(start).Milliseconds(),
	})
}

// ExpandHandler grows a caller-provided graph below one of its nodes.
func ExpandHandler(c echo.Context) error {
	type expandBody struct {
		Graph  *common.Graph `json:"graph" validate:"required"`
		NodeID string        `json:"node_id" validate:"required"`
		Depth  int           `json:"depth"`
	}

	type expandResponse struct {
		Message string        `json:"message,omitempty"`
		Graph   *common.Graph `json:"graph,omitempty"`
	}

	cc := c.(*middleware.AppContext)

	data := new(expandBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, expandResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, expandResponse{Message: "Invalid request body"})
	}
	if err := data.Graph.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, expandResponse{Message: "Invalid graph: " + err.Error()})
	}

	depth := data.Depth
	if depth == 0 {
		depth = 1
	}
	if depth < 1 || depth > maxDepthAllowed {
		return c.JSON(http.StatusBadRequest, expandResponse{Message: "depth must be between 1 and 3"})
	}

	expanded, err := cc.App.Explorer.Expand(c.Request().Context(), data.Graph, data.NodeID, depth)
	if err != nil {
		if errors.Is(err, explorer.ErrNodeNotInGraph) {
			return c.JSON(http.StatusNotFound, expandResponse{Message: "Node not present in graph"})
		}
		logger.Error("[Routes] Expansion failed", "node_id", data.NodeID, "err", err)
		return c.JSON(http.StatusInternalServerError, expandResponse{Message: "Expansion failed"})
	}

	return c.JSON(http.StatusOK, expandResponse{Graph: expanded})
}

// PathHandler searches for a link chain between two articles.
func PathHandler(c echo.Context) error {
	type pathBody struct {
		From     string `json:"from" validate:"required"`
		To       string `json:"to" validate:"required"`
		MaxDepth int    `json:"max_depth"`
	}

	type pathResponse struct {
		Message string   `json:"message,omitempty"`
		Path    []string `json:"path,omitempty"`
		Hops    int      `json:"hops,omitempty"`
	}

	cc := c.(*middleware.AppContext)

	data := new(pathBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, pathResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, pathResponse{Message: "Invalid request body"})
	}

	maxDepth := data.MaxDepth
	if maxDepth == 0 {
		maxDepth = 3
	}
	if maxDepth < 1 || maxDepth > maxDepthAllowed {
		return c.JSON(http.StatusBadRequest, pathResponse{Message: "max_depth must be between 1 and 3"})
	}

	path, err := cc.App.Explorer.ShortestPath(c.Request().Context(), data.From, data.To, maxDepth)
	if err != nil {
		if errors.Is(err, explorer.ErrPathNotFound) {
			return c.JSON(http.StatusNotFound, pathResponse{Message: "No path found within depth bound"})
		}
		logger.Error("[Routes] Path search failed", "from", data.From, "to", data.To, "err", err)
		return c.JSON(http.StatusInternalServerError, pathResponse{Message: "Path search failed"})
	}

	return c.JSON(http.StatusOK, pathResponse{Path: path, Hops: len(path) - 1})
}

// GraphMetricsHandler builds a graph for an article and reports its shape.
func GraphMetricsHandler(c echo.Context) error {
	type metricsResponse struct {
		Message string                 `json:"message,omitempty"`
		Root    string                 `json:"root,omitempty"`
		Metrics *explorer.GraphMetrics `json:"metrics,omitempty"`
	}

	cc := c.(*middleware.AppContext)

	title, err := url.PathUnescape(c.Param("title"))
	if err != nil || title == "" {
		return c.JSON(http.StatusBadRequest, metricsResponse{Message: "Invalid article title"})
	}
	depth, ok := boundedQueryInt(c, "depth", defaultDepth, 0, maxDepthAllowed)
	if !ok {
		return c.JSON(http.StatusBadRequest, metricsResponse{Message: "depth must be between 0 and 3"})
	}

	g, err := cc.App.Explorer.Explore(c.Request().Context(), title, depth, defaultMaxNodes)
	if err != nil {
		logger.Error("[Routes] Metrics exploration failed", "title", title, "err", err)
		return c.JSON(http.StatusInternalServerError, metricsResponse{Message: "Exploration failed"})
	}

	return c.JSON(http.StatusOK, metricsResponse{
		Root:    g.Root,
		Metrics: explorer.Metrics(g),
	})
}
