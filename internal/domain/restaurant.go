package domain

// DistanceUnknown marks a hit whose distance from the user was not resolved.
const DistanceUnknown = -1

// A single restaurant returned by a search collaborator.
// Hits are merged across station-centered searches and possibly annotated
// with the station they were found near; they live for one request only.
type RestaurantHit struct {
	ID                string
	Name              string
	Rating            float64 // 0 = unknown, otherwise [0,5]
	PriceTier         int     // 0 = unknown, otherwise 1..4
	Categories        []string
	Address           string
	PhotoRefs         []string
	Coordinate        Coordinate
	DistanceFromUser  int // meters, DistanceUnknown when not resolved
	OriginStationName string
	MapURL            string
}

// Key returns the hit's dedup identity.
func (h RestaurantHit) Key() string {
	if h.ID != "" {
		return h.ID
	}
	return h.Name + "|" + h.Address
}
