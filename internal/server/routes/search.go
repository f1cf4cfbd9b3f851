package routes

import (
	"net/http"
	"strconv"

	"wikigraph/internal/server/middleware"
	"wikigraph/pkg/common"
	"wikigraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SearchHandler looks up candidate articles for a search term.
func SearchHandler(c echo.Context) error {
	type searchResponse struct {
		Message string                `json:"message,omitempty"`
		Term    string                `json:"term"`
		Results []common.SearchResult `json:"results,omitempty"`
	}

	cc := c.(*middleware.AppContext)

	term := c.QueryParam("term")
	if term == "" {
		return c.JSON(http.StatusBadRequest, searchResponse{Message: "term is required"})
	}

	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			return c.JSON(http.StatusBadRequest, searchResponse{Message: "limit must be between 1 and 50", Term: term})
		}
		limit = parsed
	}

	results, err := cc.App.Wiki.Search(c.Request().Context(), term, limit)
	if err != nil {
		logger.Error("[Routes] Search failed", "term", term, "err", err)
		return c.JSON(http.StatusBadGateway, searchResponse{Message: "Search failed", Term: term})
	}

	return c.JSON(http.StatusOK, searchResponse{Term: term, Results: results})
}

// SearchSuggestionsHandler returns just the matching titles, for typeahead.
func SearchSuggestionsHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	term := c.QueryParam("term")
	if term == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "term is required"})
	}

	results, err := cc.App.Wiki.Search(c.Request().Context(), term, 5)
	if err != nil {
		logger.Error("[Routes] Suggestion search failed", "term", term, "err", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Search failed"})
	}

	suggestions := make([]string, 0, len(results))
	for _, r := range results {
		suggestions = append(suggestions, r.Title)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"term":        term,
		"suggestions": suggestions,
	})
}
