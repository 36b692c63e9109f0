// Package view turns search results into display data for the map page and the JSON API.
package view

import (
	"fmt"
	"math"

	"clinicmap/internal/domain/entity"
)

const (
	TimeUnavailable     = "Time N/A"
	DistanceUnavailable = "Distance N/A"
	RouteNotFound       = "Route not found"
)

// FormatTravelTime renders a duration in seconds as whole hours and minutes
func FormatTravelTime(seconds *float64) string {
	if seconds == nil || math.IsNaN(*seconds) || math.IsInf(*seconds, 0) {
		return TimeUnavailable
	}

	minutes := int64(math.Floor(*seconds / 60))
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("%d hr %d min (driving)", hours, minutes%60)
	}

	return fmt.Sprintf("%d min (driving)", minutes)
}

// FormatTravelDistance renders a distance in meters as kilometers with two decimals
func FormatTravelDistance(meters *float64) string {
	if meters == nil || math.IsNaN(*meters) || math.IsInf(*meters, 0) {
		return DistanceUnavailable
	}

	return fmt.Sprintf("%.2f km (driving)", *meters/1000)
}

// RouteTexts returns the travel time and distance text for one outcome
func RouteTexts(outcome entity.RouteOutcome) (travelTime, travelDistance string) {
	switch outcome.Status {
	case entity.RouteStatusOK:
		return FormatTravelTime(outcome.DurationSeconds), FormatTravelDistance(outcome.DistanceMeters)
	case entity.RouteStatusNoRoute:
		return RouteNotFound, RouteNotFound
	case entity.RouteStatusAPIError:
		text := "API Error: " + outcome.ErrorCode
		return text, text
	default:
		text := "Error: " + outcome.ErrorMessage
		return text, text
	}
}

// Location is one facility as the map page and API clients see it
type Location struct {
	Lat                float64            `json:"lat"`
	Lon                float64            `json:"lon"`
	DiseaseInfo        string             `json:"disease_info"`
	Name               *string            `json:"name,omitempty"`
	Details            *string            `json:"details,omitempty"`
	TravelTimeText     string             `json:"travel_time_text"`
	TravelDistanceText string             `json:"travel_distance_text"`
	RouteGeometry      *string            `json:"route_geometry_encoded"`
	Status             entity.RouteStatus `json:"status"`
}

// NewLocation formats one enriched result
func NewLocation(result entity.EnrichedResult) Location {
	travelTime, travelDistance := RouteTexts(result.Route)

	location := Location{
		Lat:                result.Facility.Latitude,
		Lon:                result.Facility.Longitude,
		DiseaseInfo:        result.Facility.Specialty,
		Name:               result.Facility.Name,
		Details:            result.Facility.Details,
		TravelTimeText:     travelTime,
		TravelDistanceText: travelDistance,
		Status:             result.Route.Status,
	}
	if result.Route.Status == entity.RouteStatusOK {
		location.RouteGeometry = result.Route.EncodedPath
	}

	return location
}

// NewLocations formats results, preserving order
func NewLocations(results []entity.EnrichedResult) []Location {
	locations := make([]Location, 0, len(results))
	for _, result := range results {
		locations = append(locations, NewLocation(result))
	}

	return locations
}
