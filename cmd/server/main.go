package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mraafat89/catch-a-prayer/internal/cache"
	"github.com/mraafat89/catch-a-prayer/internal/db"
	"github.com/mraafat89/catch-a-prayer/internal/maps"
	"github.com/mraafat89/catch-a-prayer/internal/notify"
	"github.com/mraafat89/catch-a-prayer/internal/service"
	"github.com/mraafat89/catch-a-prayer/internal/tz"
)

func main() {
	env := LoadEnvironment()

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	store := db.NewStore()

	// schedule cache; the service degrades to live fetches without it
	if env.RedisAddress != "" {
		cache.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	// display-board publishing is opt-in
	if env.MQTTBrokerURL != "" {
		if err := notify.Init(env.MQTTBrokerURL, "catch-a-prayer-server"); err != nil {
			log.Warn().Err(err).Msg("mqtt init failed, board publishing disabled")
		}
		defer notify.Cleanup()
	}

	mapsClient, err := maps.NewClient(env.GoogleMapsAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("maps client init")
	}

	// the timezone index takes a moment to load; do it once at startup
	resolver, err := tz.NewResolver()
	if err != nil {
		log.Fatal().Err(err).Msg("timezone resolver init")
	}

	finder := service.NewFinder(mapsClient, resolver)

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, store, finder)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
