package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mraafat89/catch-a-prayer/internal/db"
	"github.com/mraafat89/catch-a-prayer/internal/http/api"
	"github.com/mraafat89/catch-a-prayer/internal/http/api/settings/packets"
	"github.com/mraafat89/catch-a-prayer/internal/model"
)

// SettingsModule mounts the per-user settings endpoints (JWT required).
func SettingsModule(store db.Store) api.Module {
	ctl := &settingsController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.AuthGET("/settings", ctl.getSettings)
		c.AuthPUT("/settings", ctl.updateSettings)
	})
}

type settingsController struct {
	store db.Store
}

// GET /api/settings
func (s *settingsController) getSettings(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	settings, err := s.store.GetSettings(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load settings"}
	}
	return settings, nil
}

// PUT /api/settings
func (s *settingsController) updateSettings(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	settings, err := s.store.GetSettings(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load settings"}
	}

	if request.CongregationWindowMinutes != nil {
		settings.CongregationWindowMinutes = *request.CongregationWindowMinutes
	}
	if request.TravelMode != nil {
		settings.TravelMode = *request.TravelMode
	}
	if request.TravelBufferMinutes != nil {
		settings.TravelBufferMinutes = *request.TravelBufferMinutes
	}
	if request.PrayerDurationMinutes != nil {
		settings.PrayerDurationMinutes = *request.PrayerDurationMinutes
	}
	if request.MaxSearchRadiusKm != nil {
		settings.MaxSearchRadiusKm = *request.MaxSearchRadiusKm
	}
	if request.DistanceUnit != nil {
		settings.DistanceUnit = *request.DistanceUnit
	}

	if err := s.store.SaveSettings(user.ID, settings); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save settings"}
	}
	return settings, nil
}
