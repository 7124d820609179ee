package services

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"mood-dining-service/internal/domain"
	"mood-dining-service/internal/ports"
)

// Radius applied around each station when fanning out restaurant searches.
const perStationRadiusMeters = 500

// Cap on simultaneous per-station searches.
const maxConcurrentStationSearches = 4

// StationRestaurantFanout issues one independent restaurant search per
// discovered station and merges the hits.
type StationRestaurantFanout struct {
	restaurants ports.RestaurantSearch
}

func NewStationRestaurantFanout(restaurants ports.RestaurantSearch) *StationRestaurantFanout {
	return &StationRestaurantFanout{restaurants: restaurants}
}

// SearchAround searches perStationRadiusMeters around every station and
// returns the hits concatenated in station order, each annotated with the
// station it was found near.
//
// Searches run concurrently but results are re-sequenced to the input order,
// which keeps the aggregator's first-occurrence-wins dedup deterministic.
// A single station's failure is logged and its contribution dropped; the
// call errors only when every station's search failed.
func (f *StationRestaurantFanout) SearchAround(ctx context.Context, stations []domain.Station, tags []string) ([]domain.RestaurantHit, error) {
	// Skip repeated stations so no station is queried twice in one fanout,
	// even if the expander somehow produced a duplicate.
	seen := make(map[string]struct{}, len(stations))
	uniq := make([]domain.Station, 0, len(stations))
	for _, st := range stations {
		if _, ok := seen[st.Key()]; ok {
			continue
		}
		seen[st.Key()] = struct{}{}
		uniq = append(uniq, st)
	}

	if len(uniq) == 0 {
		return []domain.RestaurantHit{}, nil
	}

	perStation := make([][]domain.RestaurantHit, len(uniq))
	failures := make([]error, len(uniq))

	var g errgroup.Group
	g.SetLimit(maxConcurrentStationSearches)
	for i, st := range uniq {
		i, st := i, st
		g.Go(func() error {
			hits, err := f.restaurants.SearchRestaurants(ctx, st.Coordinate, perStationRadiusMeters, tags)
			if err != nil {
				log.Printf("fanout: station search failed station=%q id=%s err=%v", st.Name, st.ID, err)
				failures[i] = err
				return nil
			}

			for j := range hits {
				hits[j].OriginStationName = st.Name
			}
			perStation[i] = hits
			return nil
		})
	}
	// Per-station failures are absorbed above; Wait only fences the merge.
	_ = g.Wait()

	failed := 0
	out := make([]domain.RestaurantHit, 0, 32)
	for i := range uniq {
		if failures[i] != nil {
			failed++
			continue
		}
		out = append(out, perStation[i]...)
	}

	if failed == len(uniq) {
		return nil, fmt.Errorf("fanout: all %d station searches failed: %w", failed, domain.ErrUpstreamUnavailable)
	}

	return out, nil
}
