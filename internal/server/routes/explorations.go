package routes

import (
	"errors"
	"net/http"
	"strconv"

	"wikigraph/internal/server/middleware"
	"wikigraph/internal/storage"
	"wikigraph/pkg/common"
	"wikigraph/pkg/logger"
	"wikigraph/pkg/store"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// CreateExplorationHandler saves a finished graph under a new exploration id.
func CreateExplorationHandler(c echo.Context) error {
	type createExplorationBody struct {
		Name        string        `json:"name" validate:"required"`
		Description string        `json:"description"`
		Tags        []string      `json:"tags"`
		Graph       *common.Graph `json:"graph" validate:"required"`
	}

	type createExplorationResponse struct {
		Message     string             `json:"message,omitempty"`
		Exploration *store.Exploration `json:"exploration,omitempty"`
	}

	cc := c.(*middleware.AppContext)

	data := new(createExplorationBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createExplorationResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createExplorationResponse{Message: "Invalid request body"})
	}
	if err := data.Graph.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, createExplorationResponse{Message: "Invalid graph: " + err.Error()})
	}

	id, err := gonanoid.New()
	if err != nil {
		logger.Error("[Routes] Failed to generate exploration id", "err", err)
		return c.JSON(http.StatusInternalServerError, createExplorationResponse{Message: "Failed to save exploration"})
	}

	exp := &store.Exploration{
		ID:          id,
		Name:        data.Name,
		Description: data.Description,
		RootID:      data.Graph.Root,
		Tags:        data.Tags,
		Graph:       data.Graph,
	}
	if err := cc.App.Explorations.SaveExploration(c.Request().Context(), exp); err != nil {
		logger.Error("[Routes] Failed to save exploration", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, createExplorationResponse{Message: "Failed to save exploration"})
	}

	return c.JSON(http.StatusCreated, createExplorationResponse{Exploration: exp})
}

// ListExplorationsHandler pages through saved explorations without their
// graph payloads.
func ListExplorationsHandler(c echo.Context) error {
	type listExplorationsResponse struct {
		Message      string              `json:"message,omitempty"`
		Explorations []store.Exploration `json:"explorations"`
		Total        int                 `json:"total"`
		Limit        int                 `json:"limit"`
		Offset       int                 `json:"offset"`
	}

	cc := c.(*middleware.AppContext)

	params := store.ListParams{
		Search: c.QueryParam("search"),
		Tag:    c.QueryParam("tag"),
		RootID: c.QueryParam("root"),
		Limit:  20,
	}
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return c.JSON(http.StatusBadRequest, listExplorationsResponse{Message: "limit must be between 1 and 100"})
		}
		params.Limit = parsed
	}
	if raw := c.QueryParam("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, listExplorationsResponse{Message: "offset must not be negative"})
		}
		params.Offset = parsed
	}

	explorations, total, err := cc.App.Explorations.ListExplorations(c.Request().Context(), params)
	if err != nil {
		logger.Error("[Routes] Failed to list explorations", "err", err)
		return c.JSON(http.StatusInternalServerError, listExplorationsResponse{Message: "Failed to list explorations"})
	}

	return c.JSON(http.StatusOK, listExplorationsResponse{
		Explorations: explorations,
		Total:        total,
		Limit:        params.Limit,
		Offset:       params.Offset,
	})
}

// GetExplorationHandler loads one exploration, graph included.
func GetExplorationHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	exp, err := cc.App.Explorations.GetExploration(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrExplorationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Exploration not found"})
		}
		logger.Error("[Routes] Failed to load exploration", "id", c.Param("id"), "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load exploration"})
	}

	return c.JSON(http.StatusOK, exp)
}

// DownloadExplorationHandler hands out a presigned link to the archived
// graph document.
func DownloadExplorationHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)
	id := c.Param("id")

	if _, err := cc.App.Explorations.GetExploration(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrExplorationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Exploration not found"})
		}
		logger.Error("[Routes] Failed to load exploration", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load exploration"})
	}

	link, err := storage.GenerateDownloadLink(c.Request().Context(), cc.App.S3, storage.GraphArchiveKey(id))
	if err != nil {
		logger.Error("[Routes] Failed to presign archive link", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate download link"})
	}

	return c.JSON(http.StatusOK, map[string]string{"url": link})
}

// UpdateExplorationHandler renames, retags or replaces the graph of a saved
// exploration.
func UpdateExplorationHandler(c echo.Context) error {
	type updateExplorationBody struct {
		Name        string        `json:"name" validate:"required"`
		Description string        `json:"description"`
		Tags        []string      `json:"tags"`
		Graph       *common.Graph `json:"graph"`
	}

	type updateExplorationResponse struct {
		Message     string             `json:"message,omitempty"`
		Exploration *store.Exploration `json:"exploration,omitempty"`
	}

	cc := c.(*middleware.AppContext)

	data := new(updateExplorationBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, updateExplorationResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, updateExplorationResponse{Message: "Invalid request body"})
	}
	if data.Graph != nil {
		if err := data.Graph.Validate(); err != nil {
			return c.JSON(http.StatusBadRequest, updateExplorationResponse{Message: "Invalid graph: " + err.Error()})
		}
	}

	exp := &store.Exploration{
		ID:          c.Param("id"),
		Name:        data.Name,
		Description: data.Description,
		Tags:        data.Tags,
		Graph:       data.Graph,
	}
	if err := cc.App.Explorations.UpdateExploration(c.Request().Context(), exp); err != nil {
		if errors.Is(err, store.ErrExplorationNotFound) {
			return c.JSON(http.StatusNotFound, updateExplorationResponse{Message: "Exploration not found"})
		}
		logger.Error("[Routes] Failed to update exploration", "id", exp.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, updateExplorationResponse{Message: "Failed to update exploration"})
	}

	return c.JSON(http.StatusOK, updateExplorationResponse{Exploration: exp})
}

// DeleteExplorationHandler removes an exploration and its S3 archive.
func DeleteExplorationHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)
	id := c.Param("id")

	if err := cc.App.Explorations.DeleteExploration(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrExplorationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Exploration not found"})
		}
		logger.Error("[Routes] Failed to delete exploration", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete exploration"})
	}

	if err := storage.DeleteObject(c.Request().Context(), cc.App.S3, storage.GraphArchiveKey(id)); err != nil {
		logger.Warn("[Routes] Failed to delete graph archive", "id", id, "err", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Exploration deleted"})
}
