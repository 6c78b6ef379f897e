package packets

// body for updating stored settings; pointer fields are optional so a
// PUT can change one knob without restating the rest.
type UpdateSettingsRequest struct {
	CongregationWindowMinutes *int    `json:"congregation_window_minutes" binding:"omitempty,min=0,max=120"`
	TravelMode                *bool   `json:"travel_mode"`
	TravelBufferMinutes       *int    `json:"travel_buffer_minutes" binding:"omitempty,min=0,max=120"`
	PrayerDurationMinutes     *int    `json:"prayer_duration_minutes" binding:"omitempty,min=1,max=120"`
	MaxSearchRadiusKm         *int    `json:"max_search_radius_km" binding:"omitempty,min=1,max=50"`
	DistanceUnit              *string `json:"distance_unit" binding:"omitempty,oneof=km mi"`
}
