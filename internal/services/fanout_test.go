package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"mood-dining-service/internal/adapters/fake"
	"mood-dining-service/internal/domain"
)

func fanoutStations() []domain.Station {
	return []domain.Station{
		{ID: "st-a", Name: "Station A", Coordinate: domain.Coordinate{Lat: 35.0, Lng: 139.0}},
		{ID: "st-b", Name: "Station B", Coordinate: domain.Coordinate{Lat: 35.1, Lng: 139.1}},
		{ID: "st-c", Name: "Station C", Coordinate: domain.Coordinate{Lat: 35.2, Lng: 139.2}},
	}
}

func TestSearchAroundToleratesSingleFailure(t *testing.T) {
	restaurants := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(_ context.Context, center domain.Coordinate, radiusMeters int, _ []string) ([]domain.RestaurantHit, error) {
			if radiusMeters != perStationRadiusMeters {
				t.Errorf("radius = %d, want %d", radiusMeters, perStationRadiusMeters)
			}
			switch center.Lat {
			case 35.0:
				return []domain.RestaurantHit{{ID: "r1", Name: "Ramen Ichi"}}, nil
			case 35.1:
				return nil, errors.New("rate limited")
			default:
				return []domain.RestaurantHit{{ID: "r2", Name: "Cafe Two"}, {ID: "r3", Name: "Bistro Three"}}, nil
			}
		},
	}

	hits, err := NewStationRestaurantFanout(restaurants).SearchAround(context.Background(), fanoutStations(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3 (station B excluded)", len(hits))
	}
	if hits[0].ID != "r1" || hits[1].ID != "r2" || hits[2].ID != "r3" {
		t.Fatalf("hit order = [%s %s %s], want station order [r1 r2 r3]", hits[0].ID, hits[1].ID, hits[2].ID)
	}
	if hits[0].OriginStationName != "Station A" {
		t.Errorf("r1 origin = %q, want Station A", hits[0].OriginStationName)
	}
	for _, h := range hits[1:] {
		if h.OriginStationName != "Station C" {
			t.Errorf("%s origin = %q, want Station C", h.ID, h.OriginStationName)
		}
	}
}

func TestSearchAroundAllFailuresEscalate(t *testing.T) {
	restaurants := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(context.Context, domain.Coordinate, int, []string) ([]domain.RestaurantHit, error) {
			return nil, errors.New("upstream down")
		},
	}

	_, err := NewStationRestaurantFanout(restaurants).SearchAround(context.Background(), fanoutStations(), nil)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestSearchAroundSkipsRepeatedStations(t *testing.T) {
	var calls atomic.Int32
	restaurants := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(context.Context, domain.Coordinate, int, []string) ([]domain.RestaurantHit, error) {
			calls.Add(1)
			return []domain.RestaurantHit{{ID: "r1", Name: "Diner"}}, nil
		},
	}

	stations := []domain.Station{
		{ID: "st-a", Name: "Station A"},
		{ID: "st-a", Name: "Station A"},
	}

	hits, err := NewStationRestaurantFanout(restaurants).SearchAround(context.Background(), stations, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("search called %d times, want 1", n)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
}

func TestSearchAroundEmptyStationList(t *testing.T) {
	restaurants := &fake.RestaurantSearch{
		SearchRestaurantsFn: func(context.Context, domain.Coordinate, int, []string) ([]domain.RestaurantHit, error) {
			t.Fatal("no search expected")
			return nil, nil
		},
	}

	hits, err := NewStationRestaurantFanout(restaurants).SearchAround(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("got %d hits, want 0", len(hits))
	}
}
