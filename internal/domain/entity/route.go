package entity

// RouteStatus tags the outcome of a single directions lookup.
type RouteStatus string

const (
	RouteStatusOK             RouteStatus = "ok"
	RouteStatusNoRoute        RouteStatus = "no_route"
	RouteStatusAPIError       RouteStatus = "api_error"
	RouteStatusTransportError RouteStatus = "transport_error"
)

// RouteOutcome is the result of one origin/destination lookup.
// Duration, distance and path are only meaningful when Status is RouteStatusOK,
// and each of them may still be absent.
type RouteOutcome struct {
	Status          RouteStatus `json:"status"`
	DurationSeconds *float64    `json:"duration_seconds,omitempty"`
	DistanceMeters  *float64    `json:"distance_meters,omitempty"`
	EncodedPath     *string     `json:"encoded_path,omitempty"`
	ErrorCode       string      `json:"error_code,omitempty"`
	ErrorMessage    string      `json:"error_message,omitempty"`
}

// NewRouteFound builds an OK outcome.
func NewRouteFound(durationSeconds, distanceMeters *float64, encodedPath *string) RouteOutcome {
	return RouteOutcome{
		Status:          RouteStatusOK,
		DurationSeconds: durationSeconds,
		DistanceMeters:  distanceMeters,
		EncodedPath:     encodedPath,
	}
}

// NewNoRoute builds an outcome for a provider answer without any route.
func NewNoRoute() RouteOutcome {
	return RouteOutcome{Status: RouteStatusNoRoute}
}

// NewRouteAPIError builds an outcome for a provider-reported error.
func NewRouteAPIError(code, message string) RouteOutcome {
	return RouteOutcome{
		Status:       RouteStatusAPIError,
		ErrorCode:    code,
		ErrorMessage: message,
	}
}

// NewRouteTransportError builds an outcome for a failed call (network, timeout, bad payload).
func NewRouteTransportError(message string) RouteOutcome {
	return RouteOutcome{
		Status:       RouteStatusTransportError,
		ErrorMessage: message,
	}
}

// EnrichedResult joins a matched facility with its route outcome.
type EnrichedResult struct {
	Facility Facility     `json:"facility"`
	Route    RouteOutcome `json:"route"`
}
