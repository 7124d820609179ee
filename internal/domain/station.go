package domain

import "fmt"

// A transit station discovered while walking outward from the user's origin.
// Stations are created by the locator/expander, never mutated afterwards, and
// live only for the duration of one search request.
type Station struct {
	ID                 string
	Name               string
	Coordinate         Coordinate
	DistanceFromOrigin int // meters
}

// Key returns the station's dedup identity: the external place ID when
// present, otherwise a synthesized name+coordinate key. Routing collaborators
// frequently omit stop IDs, so the synthetic form matters in practice.
func (s Station) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return fmt.Sprintf("%s|%.5f,%.5f", s.Name, s.Coordinate.Lat, s.Coordinate.Lng)
}
