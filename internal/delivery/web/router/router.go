// Package router contains routing for the web delivery.
package router

import (
	"clinicmap/internal/delivery/web/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	MapHandler       *handler.MapHandler
	SearchAPIHandler *handler.SearchAPIHandler
	ShareHandler     *handler.ShareHandler
	HealthHandler    *handler.HealthHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	mapHandler       *handler.MapHandler
	searchAPIHandler *handler.SearchAPIHandler
	shareHandler     *handler.ShareHandler
	healthHandler    *handler.HealthHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		mapHandler:       params.MapHandler,
		searchAPIHandler: params.SearchAPIHandler,
		shareHandler:     params.ShareHandler,
		healthHandler:    params.HealthHandler,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.HealthCheck)

	// Map page
	e.GET("/", r.mapHandler.Index)
	e.POST("/", r.mapHandler.Search)

	// Share links
	e.GET("/share/qr", r.shareHandler.GenerateShareQR)

	apiV1 := e.Group("/api/v1")
	{
		apiV1.GET("/search", r.searchAPIHandler.Search)
		apiV1.GET("/search/geojson", r.searchAPIHandler.SearchGeoJSON)
	}
}
