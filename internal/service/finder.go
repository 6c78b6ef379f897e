// Package service orchestrates a catchability query end to end: find
// mosque candidates, resolve each one's schedule and timezone, run the
// decision engine, and rank the results across mosques.
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mraafat89/catch-a-prayer/internal/cache"
	"github.com/mraafat89/catch-a-prayer/internal/engine"
	"github.com/mraafat89/catch-a-prayer/internal/maps"
	"github.com/mraafat89/catch-a-prayer/internal/model"
	"github.com/mraafat89/catch-a-prayer/internal/notify"
	"github.com/mraafat89/catch-a-prayer/internal/scraper"
	"github.com/mraafat89/catch-a-prayer/internal/tz"
)

// at most this many mosques are resolved concurrently; schedule
// resolution can mean a scrape plus an HTTP fallback per mosque.
const defaultConcurrency = 5

type Finder struct {
	Maps        *maps.Client
	Scraper     *scraper.Scraper
	Aladhan     *scraper.AladhanClient
	TZ          tz.Resolver
	Engine      *engine.Engine
	Concurrency int
}

func NewFinder(mapsClient *maps.Client, resolver tz.Resolver) *Finder {
	return &Finder{
		Maps:        mapsClient,
		Scraper:     scraper.New(),
		Aladhan:     scraper.NewAladhanClient(),
		TZ:          resolver,
		Engine:      engine.New(),
		Concurrency: defaultConcurrency,
	}
}

// Query is one catchability question: where the user is, when "now"
// is, and which settings apply. ClientTimezone is the IANA zone the
// client reports; it backs up coordinate-based resolution.
type Query struct {
	Latitude       float64
	Longitude      float64
	RadiusKm       int
	Now            time.Time
	ClientTimezone string
	Settings       model.Settings
}

// MosqueResult pairs a mosque with its classified day.
type MosqueResult struct {
	Mosque     model.Mosque             `json:"mosque"`
	Schedule   *model.MosqueSchedule    `json:"schedule"`
	Evaluation engine.Evaluation        `json:"evaluation"`
	Next       *engine.NextPrayerSummary `json:"next_prayer,omitempty"`
}

// FindNearby runs the whole pipeline: nearby search, then a bounded
// concurrent fan-out resolving and evaluating each candidate, then a
// deterministic cross-mosque ranking.
func (f *Finder) FindNearby(ctx context.Context, q Query) ([]MosqueResult, error) {
	mosques, err := f.Maps.FindNearbyMosques(ctx, q.Latitude, q.Longitude, q.RadiusKm)
	if err != nil {
		return nil, err
	}

	results := make([]MosqueResult, len(mosques))
	sem := make(chan struct{}, f.concurrency())
	var wg sync.WaitGroup
	for i, mosque := range mosques {
		wg.Add(1)
		go func(i int, mosque model.Mosque) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = f.evaluateMosque(ctx, mosque, q)
		}(i, mosque)
	}
	wg.Wait()

	rankResults(results)
	return results, nil
}

// NextPrayer answers the single-mosque question for a known place_id.
// User coordinates are optional; without them there is no travel
// estimate and the engine reports unknown.
func (f *Finder) NextPrayer(ctx context.Context, placeID string, userLat, userLng *float64, q Query) (MosqueResult, error) {
	mosque, err := f.Maps.MosqueByPlaceID(ctx, placeID, userLat, userLng)
	if err != nil {
		return MosqueResult{}, err
	}
	return f.evaluateMosque(ctx, mosque, q), nil
}

func (f *Finder) concurrency() int {
	if f.Concurrency > 0 {
		return f.Concurrency
	}
	return defaultConcurrency
}

// evaluateMosque never fails the whole request: a mosque whose
// schedule, timezone or evaluation breaks is still returned, degraded
// to whatever the engine could say about it.
func (f *Finder) evaluateMosque(ctx context.Context, mosque model.Mosque, q Query) MosqueResult {
	loc := f.resolveLocation(mosque, q.ClientTimezone)
	mosque.Timezone = loc.String()

	schedule := f.resolveSchedule(ctx, mosque, q.Now.In(loc))

	ev, err := f.Engine.Evaluate(engine.Request{
		Schedule: schedule,
		Location: loc,
		Now:      q.Now,
		Travel:   mosque.TravelInfo,
		Settings: q.Settings,
	})
	if err != nil {
		log.Error().Err(err).Str("place_id", mosque.PlaceID).Msg("evaluation failed")
		return MosqueResult{Mosque: mosque, Schedule: schedule}
	}

	return MosqueResult{
		Mosque:     mosque,
		Schedule:   schedule,
		Evaluation: ev,
		Next:       ev.Next,
	}
}

// resolveLocation maps mosque coordinates to an IANA zone, falling
// back to the client-reported zone and finally UTC. All prayer-time
// arithmetic happens in the returned zone.
func (f *Finder) resolveLocation(mosque model.Mosque, clientTimezone string) *time.Location {
	loc, err := f.TZ.Resolve(mosque.Location.Latitude, mosque.Location.Longitude)
	if err == nil {
		return loc
	}
	log.Warn().Err(err).Str("place_id", mosque.PlaceID).Msg("timezone lookup failed")

	if clientTimezone != "" {
		if loc, err := time.LoadLocation(clientTimezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

// resolveSchedule works down the chain: cache, the mosque's own
// website, the AlAdhan calculation API, built-in defaults. Anything
// better than defaults goes back into the cache for the day.
func (f *Finder) resolveSchedule(ctx context.Context, mosque model.Mosque, localNow time.Time) *model.MosqueSchedule {
	if cached := cache.GetSchedule(ctx, mosque.PlaceID, localNow); cached != nil {
		return cached
	}

	if mosque.Website != "" {
		schedule, err := f.Scraper.ScrapeSchedule(ctx, mosque.Website)
		if err == nil {
			f.storeSchedule(ctx, mosque, localNow, schedule)
			return schedule
		}
		log.Debug().Err(err).Str("place_id", mosque.PlaceID).Str("website", mosque.Website).Msg("scrape failed")
	}

	schedule, err := f.Aladhan.FetchSchedule(ctx, mosque.Location.Latitude, mosque.Location.Longitude, localNow)
	if err == nil {
		f.storeSchedule(ctx, mosque, localNow, schedule)
		return schedule
	}
	log.Debug().Err(err).Str("place_id", mosque.PlaceID).Msg("aladhan fallback failed")

	return engine.DefaultSchedule()
}

// storeSchedule caches a freshly resolved schedule and pushes it to
// any display board listening on the mosque's topic.
func (f *Finder) storeSchedule(ctx context.Context, mosque model.Mosque, localNow time.Time, schedule *model.MosqueSchedule) {
	cache.SetSchedule(ctx, mosque.PlaceID, localNow, schedule)
	payload := notify.BuildBoardPayload(mosque.Name, localNow, schedule)
	if err := notify.PublishTimetable(mosque.PlaceID, payload); err != nil {
		log.Warn().Err(err).Str("place_id", mosque.PlaceID).Msg("board publish failed")
	}
}

// rankResults orders mosques by what the user would pick first: best
// status rank, then the most slack before the boundary, then the
// nearest, with place_id breaking the final tie.
func rankResults(results []MosqueResult) {
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := resultRank(results[i]), resultRank(results[j])
		if ri != rj {
			return ri < rj
		}
		ti, tj := resultSlack(results[i]), resultSlack(results[j])
		if ti != tj {
			return ti > tj
		}
		di, dj := resultDistance(results[i]), resultDistance(results[j])
		if di != dj {
			return di < dj
		}
		return results[i].Mosque.PlaceID < results[j].Mosque.PlaceID
	})
}

func resultRank(r MosqueResult) int {
	if r.Next == nil {
		return model.StatusUnknown.Rank() + 1
	}
	return r.Next.Status.Rank()
}

func resultSlack(r MosqueResult) int {
	if r.Next == nil {
		return -1
	}
	return r.Next.TimeRemainingMinutes
}

func resultDistance(r MosqueResult) int {
	if r.Mosque.TravelInfo == nil {
		return int(^uint(0) >> 1)
	}
	return r.Mosque.TravelInfo.DistanceMeters
}
