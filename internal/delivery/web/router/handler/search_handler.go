package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"clinicmap/config"
	deliverycontext "clinicmap/internal/delivery/context"
	"clinicmap/internal/delivery/web/response"
	"clinicmap/internal/delivery/web/validator"
	"clinicmap/internal/delivery/web/view"
	"clinicmap/internal/domain/entity"
	domainerrors "clinicmap/internal/domain/errors"
	"clinicmap/internal/errors"
	"clinicmap/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const contentTypeGeoJSON = "application/geo+json"

// SearchAPIHandlerParams holds dependencies for SearchAPIHandler, injected by Fx.
type SearchAPIHandlerParams struct {
	fx.In

	SearchUC usecase.SearchUsecase
	Config   *config.Config
	Logger   *slog.Logger
}

// SearchAPIHandler exposes the search pipeline as JSON and GeoJSON
type SearchAPIHandler struct {
	searchUC      usecase.SearchUsecase
	defaultOrigin entity.Coordinate
	logger        *slog.Logger
}

// NewSearchAPIHandler is the constructor for SearchAPIHandler
func NewSearchAPIHandler(params SearchAPIHandlerParams) *SearchAPIHandler {
	return &SearchAPIHandler{
		searchUC: params.SearchUC,
		defaultOrigin: entity.Coordinate{
			Latitude:  params.Config.Search.DefaultLatitude,
			Longitude: params.Config.Search.DefaultLongitude,
		},
		logger: params.Logger,
	}
}

// SearchRequest is the query of a search API call.
// lat and lon must be given together; without them the default origin is used.
type SearchRequest struct {
	Disease string `query:"disease" validate:"required,max=200"`
	Lat     string `query:"lat" validate:"omitempty,latitude"`
	Lon     string `query:"lon" validate:"omitempty,longitude"`
}

// SearchResultItem is one result in the API response
type SearchResultItem struct {
	view.Location
	Route entity.RouteOutcome `json:"route"`
}

// SearchResponse is the payload of a search API call
type SearchResponse struct {
	Term       string             `json:"term"`
	Origin     entity.Coordinate  `json:"origin"`
	Count      int                `json:"count"`
	DurationMs int64              `json:"duration_ms"`
	Results    []SearchResultItem `json:"results"`
}

// Search handles GET /api/v1/search
func (h *SearchAPIHandler) Search(c echo.Context) error {
	result, err := h.runSearch(c)
	if err != nil {
		return err
	}

	items := make([]SearchResultItem, 0, len(result.Results))
	for _, enriched := range result.Results {
		items = append(items, SearchResultItem{
			Location: view.NewLocation(enriched),
			Route:    enriched.Route,
		})
	}

	return response.Success(c, http.StatusOK, SearchResponse{
		Term:       result.Term,
		Origin:     result.Origin,
		Count:      len(items),
		DurationMs: result.Duration.Milliseconds(),
		Results:    items,
	})
}

// SearchGeoJSON handles GET /api/v1/search/geojson
func (h *SearchAPIHandler) SearchGeoJSON(c echo.Context) error {
	result, err := h.runSearch(c)
	if err != nil {
		return err
	}

	body, err := view.SearchFeatures(result.Origin, result.Results).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "marshal search features")
	}

	return c.Blob(http.StatusOK, contentTypeGeoJSON, body)
}

func (h *SearchAPIHandler) runSearch(c echo.Context) (*usecase.SearchResult, error) {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	req.Disease = strings.TrimSpace(req.Disease)

	if err := c.Validate(&req); err != nil {
		if _, missing := validator.FieldErrors(err)["disease"]; missing && req.Disease == "" {
			return nil, domainerrors.ErrSearchTermRequired
		}

		return nil, validationError(err)
	}

	origin := h.defaultOrigin
	if req.Lat != "" || req.Lon != "" {
		coord, ok := parseCoordinate(req.Lat, req.Lon)
		if !ok {
			return nil, domainerrors.ErrInvalidCoordinate
		}
		origin = coord
	}

	ctx := c.Request().Context()
	result := h.searchUC.Search(ctx, usecase.SearchInput{Term: req.Disease, Origin: origin})

	deliverycontext.GetLoggerOrDefault(ctx, h.logger).Debug("Search API served",
		slog.String("term", req.Disease),
		slog.Int("results", len(result.Results)),
	)

	return result, nil
}
