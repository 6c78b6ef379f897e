package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

func stdTravel() *model.TravelInfo {
	return &model.TravelInfo{DistanceMeters: 3000, DurationSeconds: 600, DurationText: "10 mins"}
}

func TestEvaluateEarlyMorningCatchesFajr(t *testing.T) {
	loc := bayArea(t)
	now := time.Date(2025, 9, 9, 4, 14, 0, 0, loc)

	ev, err := New().Evaluate(Request{
		Schedule: DefaultSchedule(),
		Location: loc,
		Now:      now,
		Travel:   stdTravel(),
		Settings: model.DefaultSettings(),
	})
	require.NoError(t, err)

	// With no published sunrise the engine estimates one 90 minutes
	// after the Fajr Adhan, so the day splits into six periods.
	require.Len(t, ev.Results, 6)
	assert.Equal(t, PeriodDelayedMakeup, ev.Results[1].Period.PeriodKind)

	require.NotNil(t, ev.Next)
	assert.Equal(t, model.PrayerFajr, ev.Next.Kind)
	assert.Equal(t, model.StatusCanCatchWithImam, ev.Next.Status)
	assert.True(t, ev.Next.CanCatch)
	assert.Equal(t, 10, ev.Next.TravelTimeMinutes)
}

func TestEvaluateMissingTravelDegradesToUnknown(t *testing.T) {
	loc := bayArea(t)

	ev, err := New().Evaluate(Request{
		Schedule: DefaultSchedule(),
		Location: loc,
		Now:      time.Date(2025, 9, 9, 12, 0, 0, 0, loc),
		Travel:   nil,
		Settings: model.DefaultSettings(),
	})
	require.NoError(t, err)

	assert.Nil(t, ev.Next)
	require.NotEmpty(t, ev.Results)
	for _, r := range ev.Results {
		assert.Equal(t, model.StatusUnknown, r.Status)
		assert.Contains(t, r.Message, "unknown")
	}
}

func TestEvaluateTravelModeCombination(t *testing.T) {
	loc := bayArea(t)
	now := time.Date(2025, 9, 9, 12, 45, 0, 0, loc) // arrival 12:55, inside Dhuhr

	settings := model.DefaultSettings()
	settings.TravelMode = true

	ev, err := New().Evaluate(Request{
		Schedule: DefaultSchedule(),
		Location: loc,
		Now:      now,
		Travel:   stdTravel(),
		Settings: settings,
	})
	require.NoError(t, err)
	require.NotNil(t, ev.Next)
	assert.Equal(t, model.StatusCombinationEarly, ev.Next.Status)
	assert.Equal(t, model.PrayerAsr, ev.Next.CombinationPartner)

	// Same instant with travel mode off: a plain single-prayer result.
	settings.TravelMode = false
	ev, err = New().Evaluate(Request{
		Schedule: DefaultSchedule(),
		Location: loc,
		Now:      now,
		Travel:   stdTravel(),
		Settings: settings,
	})
	require.NoError(t, err)
	require.NotNil(t, ev.Next)
	assert.Equal(t, model.StatusCanCatchWithImam, ev.Next.Status)
	assert.Empty(t, ev.Next.CombinationPartner)
}

func TestEvaluateFridayJumuah(t *testing.T) {
	loc := bayArea(t)
	schedule := DefaultSchedule()
	schedule.Jumuah = []model.JumuahSession{
		{Ordinal: 1, PrayerTime: model.MustTimeValue("13:30"), KhutbaStart: tvp("13:15")},
	}

	// Arriving 12:50, before the khutba: full session.
	ev, err := New().Evaluate(Request{
		Schedule: schedule,
		Location: loc,
		Now:      time.Date(2025, 9, 12, 12, 40, 0, 0, loc),
		Travel:   stdTravel(),
		Settings: model.DefaultSettings(),
	})
	require.NoError(t, err)
	require.NotNil(t, ev.Next)
	assert.Equal(t, model.PrayerJumaa, ev.Next.Kind)
	assert.Equal(t, model.StatusCanCatchWithImam, ev.Next.Status)

	// Arriving as Asr begins: the session is gone, Asr is the answer.
	ev, err = New().Evaluate(Request{
		Schedule: schedule,
		Location: loc,
		Now:      time.Date(2025, 9, 12, 16, 5, 0, 0, loc),
		Travel:   stdTravel(),
		Settings: model.DefaultSettings(),
	})
	require.NoError(t, err)

	var jumaa *CatchResult
	for i := range ev.Results {
		if ev.Results[i].Kind == model.PrayerJumaa {
			jumaa = &ev.Results[i]
		}
	}
	require.NotNil(t, jumaa)
	assert.Equal(t, model.StatusCannotCatch, jumaa.Status)

	require.NotNil(t, ev.Next)
	assert.Equal(t, model.PrayerAsr, ev.Next.Kind)
	assert.Equal(t, model.StatusCanCatchWithImam, ev.Next.Status)
}

func TestEvaluateRetriesWithDefaultTimes(t *testing.T) {
	loc := bayArea(t)
	schedule := DefaultSchedule()
	for i := range schedule.Times {
		if schedule.Times[i].Kind == model.PrayerAsr {
			// Before Dhuhr; the first build rejects it.
			schedule.Times[i] = model.RawPrayerTime{Kind: model.PrayerAsr, Adhan: model.MustTimeValue("12:00")}
		}
	}

	ev, err := New().Evaluate(Request{
		Schedule: schedule,
		Location: loc,
		Now:      time.Date(2025, 9, 9, 12, 0, 0, 0, loc),
		Travel:   stdTravel(),
		Settings: model.DefaultSettings(),
	})
	require.NoError(t, err)

	var asr *CatchResult
	for i := range ev.Results {
		if ev.Results[i].Kind == model.PrayerAsr {
			asr = &ev.Results[i]
		}
	}
	require.NotNil(t, asr)
	assert.True(t, asr.Period.Adhan.Equal(model.MustTimeValue("16:15").At(time.Date(2025, 9, 9, 0, 0, 0, 0, loc), loc)))
}

func TestEvaluateRetriesWithoutMalformedJumuah(t *testing.T) {
	loc := bayArea(t)
	schedule := DefaultSchedule()
	schedule.Jumuah = []model.JumuahSession{
		// Khutba not before the prayer time; no default can repair a
		// session, so the day falls back to a plain Dhuhr.
		{Ordinal: 1, PrayerTime: model.MustTimeValue("13:15"), KhutbaStart: tvp("13:15")},
	}

	ev, err := New().Evaluate(Request{
		Schedule: schedule,
		Location: loc,
		Now:      time.Date(2025, 9, 12, 12, 50, 0, 0, loc), // Friday
		Travel:   stdTravel(),
		Settings: model.DefaultSettings(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, ev.Results)

	var dhuhr *CatchResult
	for i := range ev.Results {
		assert.NotEqual(t, model.PrayerJumaa, ev.Results[i].Kind)
		if ev.Results[i].Kind == model.PrayerDhuhr {
			dhuhr = &ev.Results[i]
		}
	}
	require.NotNil(t, dhuhr)
	assert.Equal(t, model.StatusCanCatchWithImam, dhuhr.Status)

	require.NotNil(t, ev.Next)
	assert.Equal(t, model.PrayerDhuhr, ev.Next.Kind)
}

func TestEvaluateDropsImplausibleSunriseEstimate(t *testing.T) {
	loc := bayArea(t)
	schedule := &model.MosqueSchedule{Times: []model.RawPrayerTime{
		{Kind: model.PrayerFajr, Adhan: model.MustTimeValue("05:50")},
		// Dhuhr before Fajr+90m: the estimate cannot fit.
		{Kind: model.PrayerDhuhr, Adhan: model.MustTimeValue("07:00")},
		{Kind: model.PrayerAsr, Adhan: model.MustTimeValue("16:15")},
		{Kind: model.PrayerMaghrib, Adhan: model.MustTimeValue("19:10")},
		{Kind: model.PrayerIsha, Adhan: model.MustTimeValue("20:30")},
	}}

	ev, err := New().Evaluate(Request{
		Schedule: schedule,
		Location: loc,
		Now:      time.Date(2025, 9, 9, 6, 0, 0, 0, loc),
		Travel:   stdTravel(),
		Settings: model.DefaultSettings(),
	})
	require.NoError(t, err)

	assert.Len(t, ev.Results, 5)
	for _, r := range ev.Results {
		assert.NotEqual(t, PeriodDelayedMakeup, r.Period.PeriodKind)
	}
}

func TestEvaluatePrefersPublishedSunrise(t *testing.T) {
	loc := bayArea(t)
	schedule := DefaultSchedule()
	schedule.Sunrise = tvp("06:30")

	ev, err := New().Evaluate(Request{
		Schedule: schedule,
		Location: loc,
		Now:      time.Date(2025, 9, 9, 6, 0, 0, 0, loc),
		Travel:   stdTravel(),
		Settings: model.DefaultSettings(),
	})
	require.NoError(t, err)

	require.Len(t, ev.Results, 6)
	date := time.Date(2025, 9, 9, 0, 0, 0, 0, loc)
	assert.True(t, ev.Results[0].Period.End.Equal(model.MustTimeValue("06:30").At(date, loc)))
}

func TestEvaluateFallsBackToTomorrowFajr(t *testing.T) {
	loc := bayArea(t)
	// Twelve hours of travel pushes the arrival past everything today.
	travel := &model.TravelInfo{DistanceMeters: 900000, DurationSeconds: 12 * 3600, DurationText: "12 hrs"}

	ev, err := New().Evaluate(Request{
		Schedule: DefaultSchedule(),
		Location: loc,
		Now:      time.Date(2025, 9, 9, 21, 0, 0, 0, loc),
		Travel:   travel,
		Settings: model.DefaultSettings(),
	})
	require.NoError(t, err)

	for _, r := range ev.Results {
		assert.False(t, r.Status.CanCatch())
	}
	require.NotNil(t, ev.Next)
	assert.Equal(t, model.PrayerFajr, ev.Next.Kind)
	// Arrival lands at 09:00 the next morning, after the congregation.
	assert.Equal(t, model.StatusCanCatchSolo, ev.Next.Status)
	assert.Equal(t, 10, ev.Next.PrayerInstant.Day())
}

func TestEvaluateIsDeterministic(t *testing.T) {
	loc := bayArea(t)
	req := Request{
		Schedule: DefaultSchedule(),
		Location: loc,
		Now:      time.Date(2025, 9, 9, 12, 45, 0, 0, loc),
		Travel:   stdTravel(),
		Settings: model.DefaultSettings(),
	}

	first, err := New().Evaluate(req)
	require.NoError(t, err)
	second, err := New().Evaluate(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
