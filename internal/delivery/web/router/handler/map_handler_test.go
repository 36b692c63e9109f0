package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"clinicmap/internal/domain/entity"
	mockUsecase "clinicmap/internal/mocks/usecase"
	"clinicmap/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMapTestServer(t *testing.T, searchUC usecase.SearchUsecase) *echo.Echo {
	t.Helper()

	h := NewMapHandler(MapHandlerParams{SearchUC: searchUC, Config: testConfig(), Logger: slog.Default()})
	e := newTestEcho(t)
	e.GET("/", h.Index)
	e.POST("/", h.Search)

	return e
}

var defaultOrigin = entity.Coordinate{Latitude: 11.0283, Longitude: 77.0273}

func TestMapHandler_Index_DefaultSearch(t *testing.T) {
	searchUC := mockUsecase.NewMockSearchUsecase(t)
	searchUC.EXPECT().
		Search(mock.Anything, usecase.SearchInput{Term: "Cardiology", Origin: defaultOrigin}).
		Return(cardiologyResult("Cardiology", defaultOrigin)).
		Once()

	rec := serve(newMapTestServer(t, searchUC), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="Cardiology"`)
	assert.Contains(t, body, "pk.test-token")
	assert.Contains(t, body, "10 min (driving)")
	assert.Contains(t, body, "5.00 km (driving)")
	assert.Contains(t, body, "API Error: NoSegment")
	assert.Contains(t, body, "2 result(s)")
}

func TestMapHandler_Index_ShareLinkQuery(t *testing.T) {
	origin := entity.Coordinate{Latitude: 12.5, Longitude: 78.25}
	searchUC := mockUsecase.NewMockSearchUsecase(t)
	searchUC.EXPECT().
		Search(mock.Anything, usecase.SearchInput{Term: "Neurology", Origin: origin}).
		Return(&usecase.SearchResult{Term: "Neurology", Origin: origin, Results: []entity.EnrichedResult{}}).
		Once()

	req := httptest.NewRequest(http.MethodGet, "/?disease_name=Neurology&user_lat=12.5&user_lon=78.25", nil)
	rec := serve(newMapTestServer(t, searchUC), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0 result(s)")
}

func TestMapHandler_Search_OriginResolution(t *testing.T) {
	tests := []struct {
		name       string
		lat        string
		lon        string
		wantOrigin entity.Coordinate
	}{
		{"client location", "11.03", "77.03", entity.Coordinate{Latitude: 11.03, Longitude: 77.03}},
		{"client location with spaces", " 11.03 ", " 77.03", entity.Coordinate{Latitude: 11.03, Longitude: 77.03}},
		{"missing latitude", "", "77.03", defaultOrigin},
		{"missing both", "", "", defaultOrigin},
		{"non numeric", "abc", "77.03", defaultOrigin},
		{"latitude out of range", "91", "77.03", defaultOrigin},
		{"longitude out of range", "11.03", "-180.5", defaultOrigin},
		{"not a number", "NaN", "77.03", defaultOrigin},
		{"boundary values", "-90", "180", entity.Coordinate{Latitude: -90, Longitude: 180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searchUC := mockUsecase.NewMockSearchUsecase(t)
			searchUC.EXPECT().
				Search(mock.Anything, usecase.SearchInput{Term: "cardio", Origin: tt.wantOrigin}).
				Return(cardiologyResult("cardio", tt.wantOrigin)).
				Once()

			form := url.Values{"disease_name": {"  cardio "}, "user_lat": {tt.lat}, "user_lon": {tt.lon}}
			rec := serve(newMapTestServer(t, searchUC), postForm("/", form))

			require.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestMapHandler_Search_EmptyTermSkipsSearch(t *testing.T) {
	searchUC := mockUsecase.NewMockSearchUsecase(t)

	form := url.Values{"disease_name": {"   "}, "user_lat": {"11.03"}, "user_lon": {"77.03"}}
	rec := serve(newMapTestServer(t, searchUC), postForm("/", form))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0 result(s)")
	assert.NotContains(t, rec.Body.String(), "/share/qr")
	searchUC.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestMapHandler_Search_UnreadableBodyRendersEmptySearch(t *testing.T) {
	searchUC := mockUsecase.NewMockSearchUsecase(t)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("disease_name=Cardiology"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := serve(newMapTestServer(t, searchUC), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0 result(s)")
	assert.NotContains(t, rec.Body.String(), "INVALID_INPUT")
	searchUC.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestMapHandler_Search_IncludesShareLinks(t *testing.T) {
	searchUC := mockUsecase.NewMockSearchUsecase(t)
	searchUC.EXPECT().
		Search(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, input usecase.SearchInput) *usecase.SearchResult {
			return cardiologyResult(input.Term, input.Origin)
		})

	form := url.Values{"disease_name": {"Cardiology"}, "user_lat": {"11.03"}, "user_lon": {"77.03"}}
	rec := serve(newMapTestServer(t, searchUC), postForm("/", form))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "http://localhost:5000/?disease_name=Cardiology&amp;user_lat=11.03&amp;user_lon=77.03")
	assert.Contains(t, body, "/share/qr?disease_name=Cardiology&amp;user_lat=11.03&amp;user_lon=77.03")
}

func TestParseCoordinate(t *testing.T) {
	coord, ok := parseCoordinate("11.0283", "77.0273")
	require.True(t, ok)
	assert.Equal(t, defaultOrigin, coord)

	_, ok = parseCoordinate("Inf", "77")
	assert.False(t, ok)
}
