package ports

import (
	"context"

	"mood-dining-service/internal/domain"
)

// CategoryTransitStation is the place category used for station discovery.
const CategoryTransitStation = "transit_station"

// A place returned by a nearby-place search.
type Place struct {
	ID         string
	Name       string
	Coordinate domain.Coordinate
	Rating     float64
	PriceTier  int
	Categories []string
	Address    string
	PhotoRefs  []string
}

// Port: category-scoped nearby-place lookup around a coordinate.
type PlaceSearch interface {
	// SearchNearby returns places of the given category within radiusMeters
	// of center, in the collaborator's own ranking order. An empty slice
	// with a nil error means zero results, not a failure.
	SearchNearby(ctx context.Context, center domain.Coordinate, radiusMeters int, category string) ([]Place, error)
}
