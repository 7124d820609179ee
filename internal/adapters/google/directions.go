package google

import (
	"context"
	"fmt"
	"net/url"

	"mood-dining-service/internal/domain"
	"mood-dining-service/internal/ports"
)

// DirectionsClient implements transit routing on top of the Directions web
// service with mode=transit.
type DirectionsClient struct {
	client *Client
}

func NewDirectionsClient(client *Client) *DirectionsClient {
	return &DirectionsClient{client: client}
}

type directionsStop struct {
	Name     string `json:"name"`
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

// directionsResponse covers the parts of the Directions payload needed to
// trace transit legs. Stop IDs are not exposed by this service, so stations
// built from it rely on the name+coordinate identity.
type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Steps []struct {
				TravelMode     string `json:"travel_mode"`
				TransitDetails *struct {
					DepartureStop directionsStop `json:"departure_stop"`
					ArrivalStop   directionsStop `json:"arrival_stop"`
				} `json:"transit_details"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route requests a transit journey and returns its transit legs in travel
// order. Authorization problems map to ErrRoutingUnavailable so the caller
// can fall back to radial station discovery.
func (d *DirectionsClient) Route(ctx context.Context, origin, destination domain.Coordinate) ([]ports.TransitLeg, error) {
	q := url.Values{}
	q.Set("origin", formatLatLng(origin))
	q.Set("destination", formatLatLng(destination))
	q.Set("mode", "transit")

	var decoded directionsResponse
	if err := d.client.getJSON(ctx, "/maps/api/directions/json", q, &decoded); err != nil {
		return nil, fmt.Errorf("directions: %w", err)
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, fmt.Errorf("directions: %w", ports.ErrNoRoute)
	case "REQUEST_DENIED", "OVER_DAILY_LIMIT":
		return nil, fmt.Errorf("directions: status %s: %s: %w", decoded.Status, decoded.ErrorMessage, ports.ErrRoutingUnavailable)
	default:
		return nil, fmt.Errorf("directions: status %s: %s", decoded.Status, decoded.ErrorMessage)
	}

	var legs []ports.TransitLeg
	for _, route := range decoded.Routes {
		for _, leg := range route.Legs {
			for _, step := range leg.Steps {
				if step.TravelMode != "TRANSIT" || step.TransitDetails == nil {
					continue
				}
				legs = append(legs, ports.TransitLeg{
					Departure: toRouteStop(step.TransitDetails.DepartureStop),
					Arrival:   toRouteStop(step.TransitDetails.ArrivalStop),
				})
			}
		}
	}

	if len(legs) == 0 {
		return nil, fmt.Errorf("directions: route has no transit legs: %w", ports.ErrNoRoute)
	}

	return legs, nil
}

func toRouteStop(s directionsStop) ports.RouteStop {
	return ports.RouteStop{
		Name:       s.Name,
		Coordinate: domain.Coordinate{Lat: s.Location.Lat, Lng: s.Location.Lng},
	}
}
