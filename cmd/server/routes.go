package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mraafat89/catch-a-prayer/internal/db"
	"github.com/mraafat89/catch-a-prayer/internal/http/api"
	authapi "github.com/mraafat89/catch-a-prayer/internal/http/api/auth/endpoints"
	prayerapi "github.com/mraafat89/catch-a-prayer/internal/http/api/prayers/endpoints"
	settingsapi "github.com/mraafat89/catch-a-prayer/internal/http/api/settings/endpoints"
	"github.com/mraafat89/catch-a-prayer/internal/http/api/system"
	"github.com/mraafat89/catch-a-prayer/internal/service"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, finder *service.Finder) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/",
	},
		system.Module(),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		authapi.AuthPublicModule(env.SecretKey, store),
		prayerapi.PrayersModule(finder),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		authapi.AuthSessionModule(env.SecretKey, store),
		settingsapi.SettingsModule(store),
	)
}
