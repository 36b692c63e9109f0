// Package handler contains the echo handlers of the web server.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"clinicmap/config"
	deliverycontext "clinicmap/internal/delivery/context"
	"clinicmap/internal/delivery/web/view"
	"clinicmap/internal/domain/entity"
	domainerrors "clinicmap/internal/domain/errors"
	"clinicmap/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MapHandlerParams holds dependencies for MapHandler, injected by Fx.
type MapHandlerParams struct {
	fx.In

	SearchUC usecase.SearchUsecase
	Config   *config.Config
	Logger   *slog.Logger
}

// MapHandler serves the map page
type MapHandler struct {
	searchUC usecase.SearchUsecase
	token    string
	search   *config.SearchConfig
	shareURL string
	logger   *slog.Logger
}

// NewMapHandler is the constructor for MapHandler
func NewMapHandler(params MapHandlerParams) *MapHandler {
	handler := &MapHandler{
		searchUC: params.SearchUC,
		search:   params.Config.Search,
		logger:   params.Logger,
	}
	if params.Config.Mapbox != nil {
		handler.token = params.Config.Mapbox.Token
	}
	if params.Config.QRCode != nil {
		handler.shareURL = params.Config.QRCode.BaseURL
	}

	return handler
}

// mapForm is the search form; the same names are accepted in the query string for share links
type mapForm struct {
	DiseaseName string `form:"disease_name" query:"disease_name"`
	UserLat     string `form:"user_lat" query:"user_lat"`
	UserLon     string `form:"user_lon" query:"user_lon"`
}

// Index renders the initial search with the configured defaults.
// A disease_name query parameter turns it into a regular search.
func (h *MapHandler) Index(c echo.Context) error {
	if c.QueryParams().Has("disease_name") {
		form := h.bindForm(c)

		return h.render(c, strings.TrimSpace(form.DiseaseName), h.resolveOrigin(form.UserLat, form.UserLon), h.search.SearchZoom)
	}

	return h.render(c, h.search.DefaultTerm, h.defaultOrigin(), h.search.InitialZoom)
}

// Search handles the submitted search form.
// An unusable client location silently falls back to the default origin.
func (h *MapHandler) Search(c echo.Context) error {
	form := h.bindForm(c)

	return h.render(c, strings.TrimSpace(form.DiseaseName), h.resolveOrigin(form.UserLat, form.UserLon), h.search.SearchZoom)
}

// bindForm reads the search form; a body echo cannot bind counts as an empty form
func (h *MapHandler) bindForm(c echo.Context) mapForm {
	var form mapForm
	if err := c.Bind(&form); err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
			Debug("Unreadable search form, rendering empty search", slog.Any("error", err))

		return mapForm{}
	}

	return form
}

func (h *MapHandler) render(c echo.Context, term string, origin entity.Coordinate, zoom float64) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	locations := []view.Location{}
	if term != "" {
		result := h.searchUC.Search(ctx, usecase.SearchInput{Term: term, Origin: origin})
		locations = view.NewLocations(result.Results)
	}

	data := view.PageData{
		MapboxToken:   h.token,
		Locations:     locations,
		SearchDisease: term,
		MapCenter:     [2]float64{origin.Longitude, origin.Latitude},
		MapZoom:       zoom,
		UserLat:       origin.Latitude,
		UserLon:       origin.Longitude,
	}
	if h.shareURL != "" && term != "" {
		if link, err := BuildShareLink(h.shareURL, term, &origin); err == nil {
			data.ShareURL = link
			data.QRCodeURL = "/share/qr?" + shareQuery(term, &origin).Encode()
		}
	}

	logger.Debug("Rendering map page",
		slog.String("term", term),
		slog.Int("locations", len(locations)),
		slog.Float64("zoom", zoom),
	)

	if err := c.Render(http.StatusOK, view.IndexTemplate, data); err != nil {
		return domainerrors.NewRenderError(err, view.IndexTemplate)
	}

	return nil
}

func (h *MapHandler) defaultOrigin() entity.Coordinate {
	return entity.Coordinate{
		Latitude:  h.search.DefaultLatitude,
		Longitude: h.search.DefaultLongitude,
	}
}

// resolveOrigin uses the client coordinate only when both parts parse and lie within range
func (h *MapHandler) resolveOrigin(rawLat, rawLon string) entity.Coordinate {
	origin, ok := parseCoordinate(rawLat, rawLon)
	if !ok {
		return h.defaultOrigin()
	}

	return origin
}

func parseCoordinate(rawLat, rawLon string) (entity.Coordinate, bool) {
	rawLat, rawLon = strings.TrimSpace(rawLat), strings.TrimSpace(rawLon)
	if rawLat == "" || rawLon == "" {
		return entity.Coordinate{}, false
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return entity.Coordinate{}, false
	}

	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return entity.Coordinate{}, false
	}

	coord := entity.Coordinate{Latitude: lat, Longitude: lon}
	if !coord.IsValid() {
		return entity.Coordinate{}, false
	}

	return coord, true
}
