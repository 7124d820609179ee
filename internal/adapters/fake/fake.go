// Package fake provides scriptable in-memory collaborators implementing the
// port interfaces. They are selected at the composition boundary by tests,
// keeping test branching out of the production adapters.
package fake

import (
	"context"

	"mood-dining-service/internal/domain"
	"mood-dining-service/internal/ports"
)

// PlaceSearch answers SearchNearby from a function field.
type PlaceSearch struct {
	SearchNearbyFn func(ctx context.Context, center domain.Coordinate, radiusMeters int, category string) ([]ports.Place, error)
}

func (f *PlaceSearch) SearchNearby(ctx context.Context, center domain.Coordinate, radiusMeters int, category string) ([]ports.Place, error) {
	return f.SearchNearbyFn(ctx, center, radiusMeters, category)
}

// TransitRouting answers Route from a function field.
type TransitRouting struct {
	RouteFn func(ctx context.Context, origin, destination domain.Coordinate) ([]ports.TransitLeg, error)
}

func (f *TransitRouting) Route(ctx context.Context, origin, destination domain.Coordinate) ([]ports.TransitLeg, error) {
	return f.RouteFn(ctx, origin, destination)
}

// RestaurantSearch answers SearchRestaurants from a function field.
type RestaurantSearch struct {
	SearchRestaurantsFn func(ctx context.Context, center domain.Coordinate, radiusMeters int, tags []string) ([]domain.RestaurantHit, error)
}

func (f *RestaurantSearch) SearchRestaurants(ctx context.Context, center domain.Coordinate, radiusMeters int, tags []string) ([]domain.RestaurantHit, error) {
	return f.SearchRestaurantsFn(ctx, center, radiusMeters, tags)
}

// MoodConverter answers Convert from a function field.
type MoodConverter struct {
	ConvertFn func(ctx context.Context, moodText string) (ports.MoodQuery, error)
}

func (f *MoodConverter) Convert(ctx context.Context, moodText string) (ports.MoodQuery, error) {
	return f.ConvertFn(ctx, moodText)
}

// SearchHistory records into memory.
type SearchHistory struct {
	Records []ports.SearchRecord
	Err     error
}

func (f *SearchHistory) Record(_ context.Context, rec ports.SearchRecord) error {
	if f.Err != nil {
		return f.Err
	}
	f.Records = append(f.Records, rec)
	return nil
}
