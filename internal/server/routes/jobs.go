package routes

import (
	"encoding/json"
	"net/http"

	"wikigraph/internal/queue"
	"wikigraph/internal/server/middleware"
	"wikigraph/pkg/logger"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// CreateExploreJobHandler enqueues an exploration for the worker. The
// exploration id is assigned up front so the caller can poll for the saved
// result.
func CreateExploreJobHandler(c echo.Context) error {
	type exploreJobBody struct {
		RootTitle   string   `json:"root_title" validate:"required"`
		Depth       int      `json:"depth"`
		MaxNodes    int      `json:"max_nodes"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}

	type exploreJobResponse struct {
		Message       string `json:"message,omitempty"`
		ExplorationID string `json:"exploration_id,omitempty"`
		Status        string `json:"status,omitempty"`
	}

	cc := c.(*middleware.AppContext)

	data := new(exploreJobBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, exploreJobResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, exploreJobResponse{Message: "Invalid request body"})
	}

	if data.Depth == 0 {
		data.Depth = defaultDepth
	}
	if data.MaxNodes == 0 {
		data.MaxNodes = defaultMaxNodes
	}
	if data.Depth < 0 || data.Depth > maxDepthAllowed {
		return c.JSON(http.StatusBadRequest, exploreJobResponse{Message: "depth must be between 0 and 3"})
	}
	if data.MaxNodes < 1 || data.MaxNodes > maxNodesAllowed {
		return c.JSON(http.StatusBadRequest, exploreJobResponse{Message: "max_nodes must be between 1 and 200"})
	}

	id, err := gonanoid.New()
	if err != nil {
		logger.Error("[Routes] Failed to generate exploration id", "err", err)
		return c.JSON(http.StatusInternalServerError, exploreJobResponse{Message: "Failed to enqueue job"})
	}

	msg := queue.ExploreJobMsg{
		ExplorationID: id,
		RootTitle:     data.RootTitle,
		Depth:         data.Depth,
		MaxNodes:      data.MaxNodes,
		Name:          data.Name,
		Description:   data.Description,
		Tags:          data.Tags,
	}
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		logger.Error("[Routes] Failed to marshal explore job", "err", err)
		return c.JSON(http.StatusInternalServerError, exploreJobResponse{Message: "Failed to enqueue job"})
	}

	if err := queue.PublishFIFO(cc.App.Queue, queue.ExploreQueue, msgBytes); err != nil {
		logger.Error("[Routes] Failed to publish explore job", "err", err)
		return c.JSON(http.StatusInternalServerError, exploreJobResponse{Message: "Failed to enqueue job"})
	}

	logger.Info("[Routes] Explore job enqueued", "exploration_id", id, "root", data.RootTitle)
	return c.JSON(http.StatusAccepted, exploreJobResponse{
		ExplorationID: id,
		Status:        "queued",
	})
}
