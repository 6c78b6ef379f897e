package packets

import (
	"time"

	"github.com/mraafat89/catch-a-prayer/internal/model"
	"github.com/mraafat89/catch-a-prayer/internal/service"
)

// body for the nearby mosque search
type NearbyRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	RadiusKm  int     `json:"radius_km"`
	// IANA zone the client lives in; backs up coordinate lookup.
	ClientTimezone string `json:"client_timezone"`
	// RFC 3339 override for "now", for clients whose clock should win
	// over the server's (e.g. pre-departure planning).
	ClientCurrentTime *time.Time `json:"client_current_time"`
	// optional per-request overrides; defaults apply when omitted.
	Settings *model.Settings `json:"settings"`
}

type NearbyResponse struct {
	Mosques      []service.MosqueResult `json:"mosques"`
	Count        int                    `json:"count"`
	UserLocation model.Location         `json:"user_location"`
}
