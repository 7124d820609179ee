package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"mood-dining-service/internal/domain"
	"mood-dining-service/internal/geo"
	"mood-dining-service/internal/platform/obs"
	"mood-dining-service/internal/ports"
)

// Stages of the station-range pipeline, carried in logs and error context.
type searchStage string

const (
	stageLocating    searchStage = "LOCATING"
	stageExpanding   searchStage = "EXPANDING"
	stageFanningOut  searchStage = "FANNING_OUT"
	stageAggregating searchStage = "AGGREGATING"
)

// SearchService is the single entry point of the discovery pipeline. It
// selects between flat-radius search and the station-range walk, and caps
// the final result count. All collaborators are injected; the service holds
// no mutable state, so concurrent requests are independent.
type SearchService struct {
	locator     *StationLocator
	expander    *StationRangeExpander
	fanout      *StationRestaurantFanout
	restaurants ports.RestaurantSearch
	history     ports.SearchHistory // nil disables recording
}

func NewSearchService(
	locator *StationLocator,
	expander *StationRangeExpander,
	fanout *StationRestaurantFanout,
	restaurants ports.RestaurantSearch,
	history ports.SearchHistory,
) *SearchService {
	return &SearchService{
		locator:     locator,
		expander:    expander,
		fanout:      fanout,
		restaurants: restaurants,
		history:     history,
	}
}

// Run executes one search request and returns the final ordered hit list.
// The caller receives either a (possibly short) result list or one of the
// domain error kinds; partial upstream failures never surface here.
func (s *SearchService) Run(ctx context.Context, req domain.SearchRequest) (_ []domain.RestaurantHit, err error) {
	defer obs.Time(ctx, "search.Run")(&err)
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	var hits []domain.RestaurantHit
	switch req.Mode {
	case domain.ModeRadius:
		hits, err = s.runRadius(ctx, req)
	case domain.ModeStationRange:
		hits, err = s.runStationRange(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	s.record(ctx, req, len(hits), time.Since(start))
	return hits, nil
}

// runRadius is a single collaborator call around the user's own position.
// The collaborator's ranking is kept; only dedup and the result cap apply.
func (s *SearchService) runRadius(ctx context.Context, req domain.SearchRequest) ([]domain.RestaurantHit, error) {
	found, err := s.restaurants.SearchRestaurants(ctx, req.Origin, req.RadiusMeters, req.QueryTags)
	if err != nil {
		return nil, fmt.Errorf("radius search: %w: %v", domain.ErrUpstreamUnavailable, err)
	}

	annotateDistances(req.Origin, found)
	return DedupeTruncate(found), nil
}

// runStationRange drives locate -> expand -> fanout -> aggregate.
func (s *SearchService) runStationRange(ctx context.Context, req domain.SearchRequest) ([]domain.RestaurantHit, error) {
	stage := stageLocating
	start, err := s.locator.LocateNearest(ctx, req.Origin)
	if err != nil {
		return nil, fmt.Errorf("station range %s: %w", stage, err)
	}
	log.Printf("search: stage=%s station=%q distance=%s",
		stage, start.Name, geo.FormatDistance(start.DistanceFromOrigin))

	stage = stageExpanding
	stations, err := s.expander.Expand(ctx, start, req.StationCount)
	if err != nil {
		return nil, fmt.Errorf("station range %s: %w", stage, err)
	}

	stage = stageFanningOut
	hits, err := s.fanout.SearchAround(ctx, stations, req.QueryTags)
	if err != nil {
		return nil, fmt.Errorf("station range %s: %w", stage, err)
	}

	stage = stageAggregating
	log.Printf("search: stage=%s stations=%d hits=%d", stage, len(stations), len(hits))
	annotateDistances(req.Origin, hits)
	return Aggregate(hits, req.QueryTags), nil
}

// annotateDistances fills in each hit's distance from the user when the
// collaborator reported a coordinate but no distance.
func annotateDistances(origin domain.Coordinate, hits []domain.RestaurantHit) {
	for i := range hits {
		if hits[i].DistanceFromUser == domain.DistanceUnknown && !hits[i].Coordinate.IsZero() {
			hits[i].DistanceFromUser = geo.Meters(origin, hits[i].Coordinate)
		}
	}
}

// record persists the completed search, best-effort.
func (s *SearchService) record(ctx context.Context, req domain.SearchRequest, resultCount int, took time.Duration) {
	if s.history == nil {
		return
	}

	rec := ports.SearchRecord{
		Mode:        string(req.Mode),
		Origin:      req.Origin,
		Tags:        req.QueryTags,
		ResultCount: resultCount,
		DurationMs:  took.Milliseconds(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		log.Printf("search: history record failed err=%v", err)
	}
}
