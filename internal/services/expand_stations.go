package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"mood-dining-service/internal/domain"
	"mood-dining-service/internal/geo"
	"mood-dining-service/internal/ports"
)

// Spacing that scales both the synthetic probe destinations and the radial
// fallback radius with the requested station count.
const stationSpacingMeters = 2000

// Compass bearings probed during routed expansion. Four directions is a
// geometric heuristic, not a covering of real transit topology; a true
// network walk would need a transit graph this service does not have.
var probeBearings = []float64{0, 90, 180, 270}

// StationRangeExpander grows a single starting station into an ordered range
// of nearby stations, preferring traced transit routes and falling back to a
// plain radial place search when routing cannot help.
type StationRangeExpander struct {
	routing ports.TransitRouting // nil disables routed expansion
	places  ports.PlaceSearch
}

func NewStationRangeExpander(routing ports.TransitRouting, places ports.PlaceSearch) *StationRangeExpander {
	return &StationRangeExpander{routing: routing, places: places}
}

// Expand returns start followed by up to stationCount further stations,
// deduplicated and sorted ascending by distance from start. The result is
// never empty: with no viable candidates it is exactly [start].
func (e *StationRangeExpander) Expand(ctx context.Context, start domain.Station, stationCount int) ([]domain.Station, error) {
	if stationCount < domain.MinStationCount || stationCount > domain.MaxStationCount {
		return nil, fmt.Errorf("expand stations: station count %d outside [%d, %d]: %w",
			stationCount, domain.MinStationCount, domain.MaxStationCount, domain.ErrInvalidRequest)
	}

	radius := stationCount * stationSpacingMeters

	candidates := e.routedCandidates(ctx, start, float64(radius))
	if len(candidates) == 0 {
		candidates = e.radialCandidates(ctx, start, radius)
	}

	return assembleStationRange(start, candidates, stationCount), nil
}

// routedCandidates probes a transit route toward a synthetic destination at
// each compass bearing and collects every departure/arrival stop seen along
// the transit legs. Probes run concurrently; the merge is by bearing order,
// so the outcome does not depend on completion order. A failed probe simply
// contributes nothing.
func (e *StationRangeExpander) routedCandidates(ctx context.Context, start domain.Station, radiusMeters float64) []domain.Station {
	if e.routing == nil {
		return nil
	}

	perBearing := make([][]domain.Station, len(probeBearings))

	var g errgroup.Group
	for i, bearing := range probeBearings {
		i, bearing := i, bearing
		g.Go(func() error {
			dest := geo.PointAtBearing(start.Coordinate, bearing, radiusMeters)

			legs, err := e.routing.Route(ctx, start.Coordinate, dest)
			if err != nil {
				log.Printf("expand stations: probe failed bearing=%.0f start=%q err=%v", bearing, start.Name, err)
				return nil
			}

			perBearing[i] = legStops(legs)
			return nil
		})
	}
	// Probes never surface errors; Wait only fences the merge below.
	_ = g.Wait()

	var out []domain.Station
	for _, stations := range perBearing {
		out = append(out, stations...)
	}
	return out
}

// legStops flattens a routed journey into candidate stations. Distances are
// left at zero and recomputed during assembly.
func legStops(legs []ports.TransitLeg) []domain.Station {
	out := make([]domain.Station, 0, 2*len(legs))
	for _, leg := range legs {
		for _, stop := range []ports.RouteStop{leg.Departure, leg.Arrival} {
			out = append(out, domain.Station{
				ID:         stop.ID,
				Name:       stop.Name,
				Coordinate: stop.Coordinate,
			})
		}
	}
	return out
}

// radialCandidates is the fallback when routed expansion yields nothing: one
// place search for transit stations around start. It trades topological
// accuracy for availability and never fails the expansion; an error here
// just means the range collapses to [start].
func (e *StationRangeExpander) radialCandidates(ctx context.Context, start domain.Station, radiusMeters int) []domain.Station {
	found, err := e.places.SearchNearby(ctx, start.Coordinate, radiusMeters, ports.CategoryTransitStation)
	if err != nil {
		log.Printf("expand stations: radial fallback failed start=%q err=%v", start.Name, err)
		return nil
	}

	out := make([]domain.Station, 0, len(found))
	for _, p := range found {
		out = append(out, domain.Station{
			ID:         p.ID,
			Name:       p.Name,
			Coordinate: p.Coordinate,
		})
	}
	return out
}

// assembleStationRange recomputes candidate distances from start, drops
// duplicates (start included), sorts ascending, and caps the range at
// stationCount candidates after start.
func assembleStationRange(start domain.Station, candidates []domain.Station, stationCount int) []domain.Station {
	// Seed both identities of start: routing stops carry no place ID, so the
	// start station reappears under its synthetic name+coordinate key.
	seen := map[string]struct{}{
		start.Key(): {},
		(domain.Station{Name: start.Name, Coordinate: start.Coordinate}).Key(): {},
	}

	uniq := make([]domain.Station, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Key()]; ok {
			continue
		}
		seen[c.Key()] = struct{}{}

		c.DistanceFromOrigin = geo.Meters(start.Coordinate, c.Coordinate)
		uniq = append(uniq, c)
	}

	// Stable sort keeps bearing-probe order for equidistant candidates.
	sort.SliceStable(uniq, func(i, j int) bool {
		return uniq[i].DistanceFromOrigin < uniq[j].DistanceFromOrigin
	})

	if len(uniq) > stationCount {
		uniq = uniq[:stationCount]
	}

	return append([]domain.Station{start}, uniq...)
}
