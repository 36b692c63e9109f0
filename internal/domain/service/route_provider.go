package service

import (
	"context"

	"clinicmap/internal/domain/entity"
)

// RouteProvider computes a single driving route between two coordinates.
//
// Implementations never return provider or transport failures as errors:
// every outcome, including failures, is reported through entity.RouteOutcome.
type RouteProvider interface {
	Route(ctx context.Context, origin, destination entity.Coordinate) entity.RouteOutcome
}
