package server

import (
	"wikigraph/internal/server/middleware"
	"wikigraph/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Article search
	apiRoutes.GET("/search", routes.SearchHandler)
	apiRoutes.GET("/search/suggestions", routes.SearchSuggestionsHandler)

	// Graph building
	apiRoutes.GET("/explore/:title", routes.ExploreHandler)
	apiRoutes.POST("/explore/expand", routes.ExpandHandler)
	apiRoutes.POST("/explore/jobs", routes.CreateExploreJobHandler, middleware.RequirePermission("explore.run"))
	apiRoutes.POST("/path", routes.PathHandler)
	apiRoutes.GET("/graph/metrics/:title", routes.GraphMetricsHandler)

	// Saved explorations
	apiRoutes.POST("/explorations", routes.CreateExplorationHandler, middleware.RequirePermission("exploration.create"))
	apiRoutes.GET("/explorations", routes.ListExplorationsHandler)
	apiRoutes.GET("/explorations/:id", routes.GetExplorationHandler)
	apiRoutes.GET("/explorations/:id/download", routes.DownloadExplorationHandler)
	apiRoutes.PUT("/explorations/:id", routes.UpdateExplorationHandler, middleware.RequirePermission("exploration.update"))
	apiRoutes.DELETE("/explorations/:id", routes.DeleteExplorationHandler, middleware.RequirePermission("exploration.delete"))
}
