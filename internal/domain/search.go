package domain

import "fmt"

// SearchMode selects between a flat-radius search and the station-range walk.
type SearchMode string

const (
	ModeRadius       SearchMode = "radius"
	ModeStationRange SearchMode = "station_range"
)

// Bounds enforced on incoming requests. Values outside them are rejected
// outright rather than clamped.
const (
	MinRadiusMeters = 500
	MaxRadiusMeters = 5000
	MinStationCount = 1
	MaxStationCount = 5
)

// One user search. Constructed once per request and read-only through the
// whole pipeline.
type SearchRequest struct {
	Mode         SearchMode
	Origin       Coordinate
	QueryTags    []string
	RadiusMeters int // radius mode only
	StationCount int // station-range mode only
}

// Validate checks the request preconditions and returns a wrapped
// ErrInvalidRequest on the first violation.
func (r SearchRequest) Validate() error {
	if r.Origin.Lat < -90 || r.Origin.Lat > 90 || r.Origin.Lng < -180 || r.Origin.Lng > 180 {
		return fmt.Errorf("origin (%f, %f) out of range: %w", r.Origin.Lat, r.Origin.Lng, ErrInvalidRequest)
	}

	switch r.Mode {
	case ModeRadius:
		if r.RadiusMeters < MinRadiusMeters || r.RadiusMeters > MaxRadiusMeters {
			return fmt.Errorf("radius %dm outside [%d, %d]: %w",
				r.RadiusMeters, MinRadiusMeters, MaxRadiusMeters, ErrInvalidRequest)
		}
	case ModeStationRange:
		if r.StationCount < MinStationCount || r.StationCount > MaxStationCount {
			return fmt.Errorf("station count %d outside [%d, %d]: %w",
				r.StationCount, MinStationCount, MaxStationCount, ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("unknown search mode %q: %w", r.Mode, ErrInvalidRequest)
	}

	return nil
}
