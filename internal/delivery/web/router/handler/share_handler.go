package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"clinicmap/config"
	deliverycontext "clinicmap/internal/delivery/context"
	"clinicmap/internal/delivery/web/validator"
	"clinicmap/internal/domain/entity"
	domainerrors "clinicmap/internal/domain/errors"
	"clinicmap/internal/domain/service"
	"clinicmap/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ShareHandlerParams holds dependencies for ShareHandler, injected by Fx.
type ShareHandlerParams struct {
	fx.In

	QRCodeService service.QRCodeService
	Config        *config.Config
	Logger        *slog.Logger
}

// ShareHandler serves QR codes for search share links
type ShareHandler struct {
	qrCodeService service.QRCodeService
	baseURL       string
	logger        *slog.Logger
}

// NewShareHandler is the constructor for ShareHandler
func NewShareHandler(params ShareHandlerParams) *ShareHandler {
	handler := &ShareHandler{
		qrCodeService: params.QRCodeService,
		logger:        params.Logger,
	}
	if params.Config.QRCode != nil {
		handler.baseURL = params.Config.QRCode.BaseURL
	}

	return handler
}

// ShareQRRequest is the query of a share QR request
type ShareQRRequest struct {
	DiseaseName string `query:"disease_name" validate:"required,max=200"`
	UserLat     string `query:"user_lat" validate:"omitempty,latitude"`
	UserLon     string `query:"user_lon" validate:"omitempty,longitude"`
}

// GenerateShareQR returns a PNG QR code that opens the map page with the same search
func (h *ShareHandler) GenerateShareQR(c echo.Context) error {
	if h.baseURL == "" {
		return domainerrors.ErrShareLinkUnavailable
	}

	var req ShareQRRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidInput
	}
	req.DiseaseName = strings.TrimSpace(req.DiseaseName)

	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	var origin *entity.Coordinate
	if req.UserLat != "" || req.UserLon != "" {
		coord, ok := parseCoordinate(req.UserLat, req.UserLon)
		if !ok {
			return domainerrors.ErrInvalidCoordinate
		}
		origin = &coord
	}

	link, err := BuildShareLink(h.baseURL, req.DiseaseName, origin)
	if err != nil {
		return errors.Wrap(domainerrors.ErrShareLinkUnavailable, err.Error())
	}

	png, err := h.qrCodeService.GenerateShareQR(link)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
			Error("Failed to generate share QR code", slog.Any("error", err))

		return domainerrors.ErrQRCodeGenerationFailed
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")

	return c.Blob(http.StatusOK, "image/png", png)
}

// BuildShareLink returns the map page URL that repeats a search
func BuildShareLink(baseURL, term string, origin *entity.Coordinate) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid share base url %q", baseURL)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", errors.Errorf("share base url %q must be absolute", baseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}

	base.RawQuery = shareQuery(term, origin).Encode()

	return base.String(), nil
}

func shareQuery(term string, origin *entity.Coordinate) url.Values {
	query := url.Values{}
	query.Set("disease_name", term)
	if origin != nil {
		query.Set("user_lat", strconv.FormatFloat(origin.Latitude, 'f', -1, 64))
		query.Set("user_lon", strconv.FormatFloat(origin.Longitude, 'f', -1, 64))
	}

	return query
}

// validationError reports failed rules as "field: rule" pairs in the error details
func validationError(err error) error {
	fields := validator.FieldErrors(err)
	if len(fields) == 0 {
		return domainerrors.ErrInvalidInput
	}

	pairs := make([]string, 0, len(fields))
	for field, rule := range fields {
		pairs = append(pairs, field+": "+rule)
	}
	slices.Sort(pairs)

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(pairs, "; "))
}
