package services

import (
	"context"
	"fmt"

	"mood-dining-service/internal/domain"
	"mood-dining-service/internal/geo"
	"mood-dining-service/internal/ports"
)

// Radius used when looking for the station nearest to the user.
const nearestStationRadiusMeters = 2000

// StationLocator finds the transit station closest to a coordinate.
type StationLocator struct {
	places ports.PlaceSearch
}

func NewStationLocator(places ports.PlaceSearch) *StationLocator {
	return &StationLocator{places: places}
}

// LocateNearest returns the station nearest to origin.
//
// The collaborator's own ranking decides which station is "nearest", but the
// returned distance is recomputed locally so it always equals the haversine
// distance between origin and the station's coordinate.
func (l *StationLocator) LocateNearest(ctx context.Context, origin domain.Coordinate) (domain.Station, error) {
	found, err := l.places.SearchNearby(ctx, origin, nearestStationRadiusMeters, ports.CategoryTransitStation)
	if err != nil {
		return domain.Station{}, fmt.Errorf("locate station: search transit stations: %w: %v", domain.ErrUpstreamUnavailable, err)
	}

	if len(found) == 0 {
		return domain.Station{}, fmt.Errorf("locate station: %w", domain.ErrNoStationFound)
	}

	nearest := found[0]
	return domain.Station{
		ID:                 nearest.ID,
		Name:               nearest.Name,
		Coordinate:         nearest.Coordinate,
		DistanceFromOrigin: geo.Meters(origin, nearest.Coordinate),
	}, nil
}
