package google

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"mood-dining-service/internal/domain"
	"mood-dining-service/internal/ports"
)

// PlacesClient implements the place-search and restaurant-search ports on
// top of the Places Nearby Search web service.
type PlacesClient struct {
	client *Client
}

func NewPlacesClient(client *Client) *PlacesClient {
	return &PlacesClient{client: client}
}

// nearbySearchResponse covers the parts of the Nearby Search payload the
// pipeline cares about.
type nearbySearchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Rating     float64  `json:"rating"`
		PriceLevel int      `json:"price_level"`
		Types      []string `json:"types"`
		Vicinity   string   `json:"vicinity"`
		Photos     []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

// SearchNearby returns places of the given category around center in the
// service's own ranking order. A ZERO_RESULTS status is a normal empty
// result, not an error.
func (p *PlacesClient) SearchNearby(ctx context.Context, center domain.Coordinate, radiusMeters int, category string) ([]ports.Place, error) {
	q := url.Values{}
	q.Set("location", formatLatLng(center))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("type", category)

	decoded, err := p.nearbySearch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("places nearby search: %w", err)
	}

	out := make([]ports.Place, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		refs := make([]string, 0, len(r.Photos))
		for _, ph := range r.Photos {
			refs = append(refs, ph.PhotoReference)
		}

		out = append(out, ports.Place{
			ID:         r.PlaceID,
			Name:       r.Name,
			Coordinate: domain.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			Rating:     r.Rating,
			PriceTier:  r.PriceLevel,
			Categories: r.Types,
			Address:    r.Vicinity,
			PhotoRefs:  refs,
		})
	}
	return out, nil
}

// SearchRestaurants returns restaurant hits around center, narrowed by the
// mood tags as a keyword filter. Distance from the user is left unresolved;
// the pipeline computes it from the hit coordinate.
func (p *PlacesClient) SearchRestaurants(ctx context.Context, center domain.Coordinate, radiusMeters int, tags []string) ([]domain.RestaurantHit, error) {
	q := url.Values{}
	q.Set("location", formatLatLng(center))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("type", "restaurant")
	if len(tags) > 0 {
		q.Set("keyword", strings.Join(tags, " "))
	}

	decoded, err := p.nearbySearch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("places restaurant search: %w", err)
	}

	out := make([]domain.RestaurantHit, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		refs := make([]string, 0, len(r.Photos))
		for _, ph := range r.Photos {
			refs = append(refs, ph.PhotoReference)
		}

		out = append(out, domain.RestaurantHit{
			ID:               r.PlaceID,
			Name:             r.Name,
			Rating:           r.Rating,
			PriceTier:        r.PriceLevel,
			Categories:       r.Types,
			Address:          r.Vicinity,
			PhotoRefs:        refs,
			Coordinate:       domain.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			DistanceFromUser: domain.DistanceUnknown,
			MapURL:           mapLink(r.PlaceID),
		})
	}
	return out, nil
}

func (p *PlacesClient) nearbySearch(ctx context.Context, q url.Values) (*nearbySearchResponse, error) {
	var decoded nearbySearchResponse
	if err := p.client.getJSON(ctx, "/maps/api/place/nearbysearch/json", q, &decoded); err != nil {
		return nil, err
	}

	switch decoded.Status {
	case "OK", "ZERO_RESULTS":
		return &decoded, nil
	default:
		return nil, fmt.Errorf("status %s: %s", decoded.Status, decoded.ErrorMessage)
	}
}

func formatLatLng(c domain.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}

func mapLink(placeID string) string {
	return "https://www.google.com/maps/place/?q=place_id:" + placeID
}
