package domain

// Immutable geographic coordinate (WGS84 degrees).
type Coordinate struct {
	Lat float64
	Lng float64
}

// IsZero reports whether the coordinate was never set.
// The zero value sits in the Gulf of Guinea and is not a valid venue location
// for this service, so it doubles as the "unknown" marker.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}
