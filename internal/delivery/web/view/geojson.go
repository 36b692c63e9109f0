package view

import (
	"clinicmap/internal/domain/entity"
	"clinicmap/internal/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"
)

// Feature kinds in the search FeatureCollection
const (
	FeatureOrigin   = "origin"
	FeatureFacility = "facility"
	FeatureRoute    = "route"
)

// DecodePath decodes a precision-5 encoded polyline into [lon, lat] points
func DecodePath(encoded string) (orb.LineString, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "decode route polyline")
	}
	if len(rest) > 0 {
		return nil, errors.Errorf("decode route polyline: %d trailing bytes", len(rest))
	}

	line := make(orb.LineString, 0, len(coords))
	for _, coord := range coords {
		line = append(line, orb.Point{coord[1], coord[0]})
	}

	return line, nil
}

// SearchFeatures builds a FeatureCollection with the origin, one point per facility
// and one line per decodable route. Paths that fail to decode are left out.
func SearchFeatures(origin entity.Coordinate, results []entity.EnrichedResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	originFeature := geojson.NewFeature(origin.Point())
	originFeature.Properties["kind"] = FeatureOrigin
	fc.Append(originFeature)

	for i, result := range results {
		location := NewLocation(result)
		point := result.Facility.Location().Point()

		feature := geojson.NewFeature(point)
		feature.Properties["kind"] = FeatureFacility
		feature.Properties["index"] = i
		feature.Properties["disease_info"] = location.DiseaseInfo
		feature.Properties["travel_time_text"] = location.TravelTimeText
		feature.Properties["travel_distance_text"] = location.TravelDistanceText
		feature.Properties["status"] = string(location.Status)
		feature.Properties["straight_line_km"] = geo.Distance(origin.Point(), point) / 1000
		if location.Name != nil {
			feature.Properties["name"] = *location.Name
		}
		if location.Details != nil {
			feature.Properties["details"] = *location.Details
		}
		fc.Append(feature)

		if location.RouteGeometry == nil {
			continue
		}

		line, err := DecodePath(*location.RouteGeometry)
		if err != nil || len(line) < 2 {
			continue
		}

		route := geojson.NewFeature(line)
		route.Properties["kind"] = FeatureRoute
		route.Properties["index"] = i
		if result.Route.DistanceMeters != nil {
			route.Properties["distance_m"] = *result.Route.DistanceMeters
		}
		if result.Route.DurationSeconds != nil {
			route.Properties["duration_s"] = *result.Route.DurationSeconds
		}
		fc.Append(route)
	}

	return fc
}
