// Package cache holds the request-spanning schedule cache. Scraping a
// mosque website is slow and its timetable changes at most daily, so
// schedules are kept in Redis for 24 hours keyed by place and date.
// The engine itself never touches this cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

const scheduleTTL = 24 * time.Hour

var Rdb *redis.Client

func InitRedis(redisAddress, redisUsername, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func scheduleKey(placeID string, date time.Time) string {
	return fmt.Sprintf("schedule:%s:%s", placeID, date.Format("2006-01-02"))
}

// GetSchedule returns the cached schedule for a mosque and day, or nil
// on a miss. Cache failures are logged and treated as misses.
func GetSchedule(ctx context.Context, placeID string, date time.Time) *model.MosqueSchedule {
	if Rdb == nil {
		return nil
	}

	payload, err := Rdb.Get(ctx, scheduleKey(placeID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("place_id", placeID).Msg("schedule cache read failed")
		}
		return nil
	}

	var schedule model.MosqueSchedule
	if err := json.Unmarshal(payload, &schedule); err != nil {
		log.Warn().Err(err).Str("place_id", placeID).Msg("corrupt cached schedule")
		return nil
	}
	return &schedule
}

// SetSchedule stores a schedule for the rest of the day. Best effort;
// a write failure only costs a re-scrape.
func SetSchedule(ctx context.Context, placeID string, date time.Time, schedule *model.MosqueSchedule) {
	if Rdb == nil || schedule == nil {
		return
	}

	payload, err := json.Marshal(schedule)
	if err != nil {
		log.Warn().Err(err).Str("place_id", placeID).Msg("failed to marshal schedule")
		return
	}
	if err := Rdb.Set(ctx, scheduleKey(placeID, date), payload, scheduleTTL).Err(); err != nil {
		log.Warn().Err(err).Str("place_id", placeID).Msg("schedule cache write failed")
	}
}
