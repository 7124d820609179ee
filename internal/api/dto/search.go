package dto

type SearchRequest struct {
	Mood         string  `json:"mood"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Mode         string  `json:"mode"`
	RadiusMeters int     `json:"radius_meters"`
	StationCount int     `json:"station_count"`
}

type RestaurantResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Rating        float64  `json:"rating"`
	PriceTier     int      `json:"price_tier"`
	Categories    []string `json:"categories"`
	Address       string   `json:"address"`
	PhotoRefs     []string `json:"photo_refs"`
	DistanceM     int      `json:"distance_meters,omitempty"`
	DistanceText  string   `json:"distance_text,omitempty"`
	OriginStation string   `json:"origin_station,omitempty"`
	MapURL        string   `json:"map_url"`
}

type SearchResponse struct {
	Tags    []string             `json:"tags"`
	Results []RestaurantResponse `json:"results"`
}
