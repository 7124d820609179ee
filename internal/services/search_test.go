package services

import (
	"context"
	"errors"
	"testing"

	"mood-dining-service/internal/adapters/fake"
	"mood-dining-service/internal/domain"
	"mood-dining-service/internal/geo"
	"mood-dining-service/internal/ports"
)

var userOrigin = domain.Coordinate{Lat: 35.6762, Lng: 139.6503}

func newTestSearchService(places ports.PlaceSearch, routing ports.TransitRouting, restaurants ports.RestaurantSearch, history ports.SearchHistory) *SearchService {
	return NewSearchService(
		NewStationLocator(places),
		NewStationRangeExpander(routing, places),
		NewStationRestaurantFanout(restaurants),
		restaurants,
		history,
	)
}

func TestRunRadiusModeKeepsCollaboratorOrder(t *testing.T) {
	restaurants := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(_ context.Context, center domain.Coordinate, radiusMeters int, _ []string) ([]domain.RestaurantHit, error) {
			if center != userOrigin {
				t.Errorf("center = %+v, want user origin", center)
			}
			if radiusMeters != 1500 {
				t.Errorf("radius = %d, want 1500", radiusMeters)
			}
			// Low rating first: radius mode must not re-rank.
			return []domain.RestaurantHit{
				{ID: "r1", Rating: 2.1, DistanceFromUser: 100},
				{ID: "r2", Rating: 4.9, DistanceFromUser: 900},
				{ID: "r1", Rating: 2.1, DistanceFromUser: 100},
			}, nil
		},
	}

	history := &fake.SearchHistory{}
	svc := newTestSearchService(&fake.PlaceSearch{}, nil, restaurants, history)

	hits, err := svc.Run(context.Background(), domain.SearchRequest{
		Mode:         domain.ModeRadius,
		Origin:       userOrigin,
		RadiusMeters: 1500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 2 || hits[0].ID != "r1" || hits[1].ID != "r2" {
		t.Fatalf("hits = %+v, want deduplicated collaborator order [r1, r2]", hits)
	}

	if len(history.Records) != 1 {
		t.Fatalf("recorded %d searches, want 1", len(history.Records))
	}
	if rec := history.Records[0]; rec.Mode != string(domain.ModeRadius) || rec.ResultCount != 2 {
		t.Fatalf("record = %+v, want radius mode with 2 results", rec)
	}
}

func TestRunStationRangeEndToEnd(t *testing.T) {
	stationA := geo.PointAtBearing(userOrigin, 90, 200)
	stationB := geo.PointAtBearing(userOrigin, 0, 1100)

	places := &fake.PlaceSearch{
		SearchNearbyFn: func(_ context.Context, center domain.Coordinate, _ int, category string) ([]ports.Place, error) {
			if category != ports.CategoryTransitStation {
				t.Fatalf("category = %q", category)
			}
			if center == userOrigin {
				// Locator call.
				return []ports.Place{{ID: "st-a", Name: "Station A", Coordinate: stationA}}, nil
			}
			// Radial fallback around station A.
			return []ports.Place{{ID: "st-b", Name: "Station B", Coordinate: stationB}}, nil
		},
	}

	restaurants := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(_ context.Context, center domain.Coordinate, _ int, tags []string) ([]domain.RestaurantHit, error) {
			if len(tags) != 1 || tags[0] != "ramen" {
				t.Errorf("tags = %v, want [ramen]", tags)
			}
			if center == stationA {
				return []domain.RestaurantHit{
					{ID: "r1", Name: "Menya Aoi", Rating: 4.3, Coordinate: geo.PointAtBearing(stationA, 45, 120), DistanceFromUser: domain.DistanceUnknown},
				}, nil
			}
			return []domain.RestaurantHit{
				{ID: "r2", Name: "Ramen Kita", Rating: 4.8, Coordinate: geo.PointAtBearing(stationB, 10, 90), DistanceFromUser: domain.DistanceUnknown},
			}, nil
		},
	}

	svc := newTestSearchService(places, nil, restaurants, nil)

	hits, err := svc.Run(context.Background(), domain.SearchRequest{
		Mode:         domain.ModeStationRange,
		Origin:       userOrigin,
		QueryTags:    []string{"ramen"},
		StationCount: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	// r2 outranks r1 (rating gap 0.5 is decisive).
	if hits[0].ID != "r2" || hits[1].ID != "r1" {
		t.Fatalf("order = [%s, %s], want [r2, r1]", hits[0].ID, hits[1].ID)
	}
	if hits[0].OriginStationName != "Station B" || hits[1].OriginStationName != "Station A" {
		t.Fatalf("origins = [%s, %s], want [Station B, Station A]",
			hits[0].OriginStationName, hits[1].OriginStationName)
	}
	for _, h := range hits {
		if h.DistanceFromUser == domain.DistanceUnknown {
			t.Errorf("%s distance left unresolved", h.ID)
		}
	}
}

func TestRunPropagatesNoStationFound(t *testing.T) {
	places := &fake.PlaceSearch{
		SearchNearbyFn: func(context.Context, domain.Coordinate, int, string) ([]ports.Place, error) {
			return nil, nil
		},
	}

	svc := newTestSearchService(places, nil, &fake.RestaurantSearch{}, nil)

	_, err := svc.Run(context.Background(), domain.SearchRequest{
		Mode:         domain.ModeStationRange,
		Origin:       userOrigin,
		StationCount: 2,
	})
	if !errors.Is(err, domain.ErrNoStationFound) {
		t.Fatalf("err = %v, want ErrNoStationFound", err)
	}
}

func TestRunRejectsInvalidRequests(t *testing.T) {
	svc := newTestSearchService(&fake.PlaceSearch{}, nil, &fake.RestaurantSearch{}, nil)

	cases := []domain.SearchRequest{
		{Mode: domain.ModeRadius, Origin: userOrigin, RadiusMeters: 100},
		{Mode: domain.ModeRadius, Origin: userOrigin, RadiusMeters: 9000},
		{Mode: domain.ModeStationRange, Origin: userOrigin, StationCount: 0},
		{Mode: domain.ModeStationRange, Origin: userOrigin, StationCount: 6},
		{Mode: "walking", Origin: userOrigin},
		{Mode: domain.ModeRadius, Origin: domain.Coordinate{Lat: 95, Lng: 0}, RadiusMeters: 1000},
	}

	for _, req := range cases {
		if _, err := svc.Run(context.Background(), req); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("req %+v: err = %v, want ErrInvalidRequest", req, err)
		}
	}
}

func TestRunRadiusUpstreamFailure(t *testing.T) {
	restaurants := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(context.Context, domain.Coordinate, int, []string) ([]domain.RestaurantHit, error) {
			return nil, errors.New("search backend down")
		},
	}

	svc := newTestSearchService(&fake.PlaceSearch{}, nil, restaurants, nil)

	_, err := svc.Run(context.Background(), domain.SearchRequest{
		Mode:         domain.ModeRadius,
		Origin:       userOrigin,
		RadiusMeters: 1000,
	})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestRunHistoryFailureDoesNotAffectResponse(t *testing.T) {
	restaurants := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(context.Context, domain.Coordinate, int, []string) ([]domain.RestaurantHit, error) {
			return []domain.RestaurantHit{{ID: "r1"}}, nil
		},
	}
	history := &fake.SearchHistory{Err: errors.New("db down")}

	svc := newTestSearchService(&fake.PlaceSearch{}, nil, restaurants, history)

	hits, err := svc.Run(context.Background(), domain.SearchRequest{
		Mode:         domain.ModeRadius,
		Origin:       userOrigin,
		RadiusMeters: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
}
