package ports

import (
	"context"

	"mood-dining-service/internal/domain"
)

// Port: restaurant lookup around a coordinate, optionally narrowed by the
// tags produced from the user's mood text.
type RestaurantSearch interface {
	// SearchRestaurants returns hits within radiusMeters of center in the
	// collaborator's native ranking order. OriginStationName and
	// DistanceFromUser are left for the pipeline to fill in.
	SearchRestaurants(ctx context.Context, center domain.Coordinate, radiusMeters int, tags []string) ([]domain.RestaurantHit, error)
}
