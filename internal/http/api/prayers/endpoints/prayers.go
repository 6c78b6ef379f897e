package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mraafat89/catch-a-prayer/internal/http/api"
	"github.com/mraafat89/catch-a-prayer/internal/http/api/prayers/packets"
	"github.com/mraafat89/catch-a-prayer/internal/model"
	"github.com/mraafat89/catch-a-prayer/internal/service"
)

// PrayersModule mounts the public catchability endpoints.
func PrayersModule(finder *service.Finder) api.Module {
	ctl := &prayerController{finder: finder}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/mosques/nearby", ctl.findNearby)
		c.GET("/mosques/:place_id/next-prayer", ctl.nextPrayer)
	})
}

type prayerController struct {
	finder *service.Finder
}

// POST /api/mosques/nearby
func (p *prayerController) findNearby(ctx *gin.Context) (any, *api.APIError) {
	var request packets.NearbyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	settings := model.DefaultSettings()
	if request.Settings != nil {
		settings = *request.Settings
	}

	now := time.Now()
	if request.ClientCurrentTime != nil {
		now = *request.ClientCurrentTime
	}

	results, err := p.finder.FindNearby(ctx.Request.Context(), service.Query{
		Latitude:       request.Latitude,
		Longitude:      request.Longitude,
		RadiusKm:       request.RadiusKm,
		Now:            now,
		ClientTimezone: request.ClientTimezone,
		Settings:       settings,
	})
	if err != nil {
		log.Error().Err(err).Msg("nearby search failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "nearby search failed"}
	}

	return packets.NearbyResponse{
		Mosques:      results,
		Count:        len(results),
		UserLocation: model.Location{Latitude: request.Latitude, Longitude: request.Longitude},
	}, nil
}

// GET /api/mosques/:place_id/next-prayer?user_lat=..&user_lng=..&tz=..
func (p *prayerController) nextPrayer(ctx *gin.Context) (any, *api.APIError) {
	placeID := ctx.Param("place_id")
	if placeID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "place_id is required"}
	}

	var userLat, userLng *float64
	if raw := ctx.Query("user_lat"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid user_lat"}
		}
		userLat = &v
	}
	if raw := ctx.Query("user_lng"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid user_lng"}
		}
		userLng = &v
	}
	if (userLat == nil) != (userLng == nil) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "user_lat and user_lng must be given together"}
	}

	result, err := p.finder.NextPrayer(ctx.Request.Context(), placeID, userLat, userLng, service.Query{
		Now:            time.Now(),
		ClientTimezone: ctx.Query("tz"),
		Settings:       model.DefaultSettings(),
	})
	if err != nil {
		log.Error().Err(err).Str("place_id", placeID).Msg("next prayer lookup failed")
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "mosque not found"}
	}

	return result, nil
}
