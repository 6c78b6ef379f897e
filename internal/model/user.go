package model

import "time"

type User struct {
	ID             int       `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	Name           *string   `db:"name"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Settings are the user-tunable knobs the engine consumes. Stored one
// row per user; defaults are served when the user has never saved any.
type Settings struct {
	CongregationWindowMinutes int    `db:"congregation_window_minutes" json:"congregation_window_minutes"`
	TravelMode                bool   `db:"travel_mode"                 json:"travel_mode"`
	TravelBufferMinutes       int    `db:"travel_buffer_minutes"       json:"travel_buffer_minutes"`
	PrayerDurationMinutes     int    `db:"prayer_duration_minutes"     json:"assumed_prayer_duration_minutes"`
	MaxSearchRadiusKm         int    `db:"max_search_radius_km"        json:"max_search_radius"`
	DistanceUnit              string `db:"distance_unit"               json:"distance_unit"`
}

// DefaultSettings mirrors the documented defaults: a 15 minute
// congregation window, no travel buffer, 5 km search radius.
func DefaultSettings() Settings {
	return Settings{
		CongregationWindowMinutes: 15,
		TravelMode:                false,
		TravelBufferMinutes:       0,
		PrayerDurationMinutes:     15,
		MaxSearchRadiusKm:         5,
		DistanceUnit:              "km",
	}
}
