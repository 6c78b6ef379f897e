package model

// Location is a geographic point, optionally with a display address.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// TravelInfo is the routing collaborator's estimate for one
// (user, mosque) pair.
type TravelInfo struct {
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
	DurationText    string `json:"duration_text"`
}

// Mosque is one candidate returned by the places collaborator, enriched
// with its schedule and the engine's classification for today.
type Mosque struct {
	PlaceID          string      `json:"place_id"`
	Name             string      `json:"name"`
	Location         Location    `json:"location"`
	PhoneNumber      string      `json:"phone_number,omitempty"`
	Website          string      `json:"website,omitempty"`
	Rating           float64     `json:"rating,omitempty"`
	UserRatingsTotal int         `json:"user_ratings_total,omitempty"`
	Timezone         string      `json:"timezone,omitempty"`
	TravelInfo       *TravelInfo `json:"travel_info,omitempty"`
}
