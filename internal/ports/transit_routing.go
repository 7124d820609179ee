package ports

import (
	"context"
	"errors"

	"mood-dining-service/internal/domain"
)

var (
	// The routing collaborator is not configured or not authorized.
	ErrRoutingUnavailable = errors.New("transit routing unavailable")

	// The collaborator is reachable but found no transit route.
	ErrNoRoute = errors.New("no transit route found")
)

// A stop on a transit leg. The stop ID is frequently absent from routing
// responses; Station.Key falls back to name+coordinate in that case.
type RouteStop struct {
	ID         string
	Name       string
	Coordinate domain.Coordinate
}

// One transit segment of a routed journey.
type TransitLeg struct {
	Departure RouteStop
	Arrival   RouteStop
}

// Port: transit route lookup between two coordinates.
type TransitRouting interface {
	// Route returns the transit legs of a journey from origin to
	// destination, or ErrRoutingUnavailable / ErrNoRoute.
	Route(ctx context.Context, origin, destination domain.Coordinate) ([]TransitLeg, error)
}
