package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"clinicmap/config"
	webmiddleware "clinicmap/internal/delivery/web/middleware"
	"clinicmap/internal/delivery/web/validator"
	"clinicmap/internal/delivery/web/view"
	"clinicmap/internal/domain/entity"
	"clinicmap/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func testConfig() *config.Config {
	cfg := &config.Config{
		Mapbox: &config.MapboxConfig{Token: "pk.test-token"},
		QRCode: &config.QRCodeConfig{BaseURL: "http://localhost:5000"},
	}
	cfg.ApplyDefaults()

	return cfg
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Validator = validator.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = webmiddleware.NewErrorMiddleware(slog.Default()).HandleHTTPError

	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	return req
}

func cardiologyResult(term string, origin entity.Coordinate) *usecase.SearchResult {
	return &usecase.SearchResult{
		Term:   term,
		Origin: origin,
		Results: []entity.EnrichedResult{
			{
				Facility: entity.Facility{Latitude: 11.0, Longitude: 77.0, Specialty: "Cardiology"},
				Route:    entity.NewRouteFound(float64Ptr(600), float64Ptr(5000), nil),
			},
			{
				Facility: entity.Facility{Latitude: 12.0, Longitude: 78.0, Specialty: "Cardiology"},
				Route:    entity.NewRouteAPIError("NoSegment", "No road segment could be matched"),
			},
		},
		Duration: 15 * time.Millisecond,
	}
}

func extractData(t *testing.T, body []byte) string {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))

	return string(envelope.Data)
}
