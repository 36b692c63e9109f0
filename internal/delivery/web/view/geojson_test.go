package view

import (
	"testing"

	"clinicmap/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference polyline from the encoding format documentation
const samplePath = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

func TestDecodePath(t *testing.T) {
	line, err := DecodePath(samplePath)
	require.NoError(t, err)

	require.Len(t, line, 3)
	assert.InDelta(t, -120.2, line[0].Lon(), 1e-6)
	assert.InDelta(t, 38.5, line[0].Lat(), 1e-6)
	assert.InDelta(t, -120.95, line[1].Lon(), 1e-6)
	assert.InDelta(t, 40.7, line[1].Lat(), 1e-6)
	assert.InDelta(t, -126.453, line[2].Lon(), 1e-6)
	assert.InDelta(t, 43.252, line[2].Lat(), 1e-6)
}

func TestDecodePath_Invalid(t *testing.T) {
	_, err := DecodePath("_p~iF~ps|U_")
	require.Error(t, err)
}

func TestSearchFeatures(t *testing.T) {
	origin := entity.Coordinate{Latitude: 11.03, Longitude: 77.03}
	results := []entity.EnrichedResult{
		{
			Facility: entity.Facility{Latitude: 11.0, Longitude: 77.0, Specialty: "Cardiology", Name: ptr("Heart Care")},
			Route:    entity.NewRouteFound(ptr(600.0), ptr(5000.0), ptr(samplePath)),
		},
		{
			Facility: entity.Facility{Latitude: 12.0, Longitude: 78.0, Specialty: "Cardiology"},
			Route:    entity.NewNoRoute(),
		},
		{
			Facility: entity.Facility{Latitude: 13.0, Longitude: 79.0, Specialty: "Cardiology"},
			Route:    entity.NewRouteFound(nil, nil, ptr("not a polyline ~")),
		},
	}

	fc := SearchFeatures(origin, results)

	// origin + 3 facilities + 1 decodable route
	require.Len(t, fc.Features, 5)

	assert.Equal(t, FeatureOrigin, fc.Features[0].Properties["kind"])
	assert.Equal(t, orb.Point{77.03, 11.03}, fc.Features[0].Geometry)

	first := fc.Features[1]
	assert.Equal(t, FeatureFacility, first.Properties["kind"])
	assert.Equal(t, "Heart Care", first.Properties["name"])
	assert.Equal(t, "10 min (driving)", first.Properties["travel_time_text"])
	assert.InDelta(t, 4.6, first.Properties["straight_line_km"].(float64), 0.2)

	route := fc.Features[2]
	assert.Equal(t, FeatureRoute, route.Properties["kind"])
	assert.Equal(t, 0, route.Properties["index"])
	assert.IsType(t, orb.LineString{}, route.Geometry)

	assert.Equal(t, "Route not found", fc.Features[3].Properties["travel_time_text"])
	assert.Equal(t, FeatureFacility, fc.Features[4].Properties["kind"])

	_, err := fc.MarshalJSON()
	require.NoError(t, err)
}
