package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

func TestSelectNextPicksFirstCatchable(t *testing.T) {
	loc := bayArea(t)
	periods := buildDay(t)
	at := arriveAt(model.MustTimeValue("12:50").At(tuesday(loc), loc))

	results := []CatchResult{
		Classify(periods[0], at, model.DefaultSettings()), // Fajr, long past
		Classify(periods[1], at, model.DefaultSettings()), // Dhuhr, catchable
		Classify(periods[2], at, model.DefaultSettings()),
	}
	require.Equal(t, model.StatusCannotCatch, results[0].Status)

	next := SelectNext(results, false)
	require.NotNil(t, next)
	assert.Equal(t, model.PrayerDhuhr, next.Kind)
	assert.Equal(t, model.StatusCanCatchWithImam, next.Status)
	assert.True(t, next.CanCatch)
	// the recommendation anchors on the Iqama when one is published
	assert.True(t, next.PrayerInstant.Equal(*periods[1].Iqama))
	assert.Equal(t, 10, next.TravelTimeMinutes)
}

func TestSelectNextSkipsCombinationWithoutTravelMode(t *testing.T) {
	loc := bayArea(t)
	periods := buildDay(t)
	at := arriveAt(model.MustTimeValue("12:50").At(tuesday(loc), loc))

	base := Classify(periods[1], at, model.DefaultSettings())
	combo := EvaluateCombination(periods, base)
	require.NotNil(t, combo)

	results := []CatchResult{*combo}
	assert.Nil(t, SelectNext(results, false))

	next := SelectNext(results, true)
	require.NotNil(t, next)
	assert.Equal(t, model.StatusCombinationEarly, next.Status)
	assert.Equal(t, model.PrayerAsr, next.CombinationPartner)
}

func TestSelectNextNilWhenNothingCatchable(t *testing.T) {
	periods := buildDay(t)
	at := arriveAt(periods[len(periods)-1].End) // past the whole day

	var results []CatchResult
	for _, p := range periods {
		results = append(results, Classify(p, at, model.DefaultSettings()))
	}
	assert.Nil(t, SelectNext(results, false))
}

func TestSummarizeAnchorsOnKhutbaBoundary(t *testing.T) {
	loc := bayArea(t)
	date := friday(loc)
	sessions := []model.JumuahSession{{Ordinal: 1, PrayerTime: model.MustTimeValue("13:30"), KhutbaStart: tvp("13:15")}}
	periods, err := WindowBuilder{KhutbaLeadMinutes: 15}.Build(date, loc, dayTimes(), nil, sessions, true)
	require.NoError(t, err)

	at := arriveAt(model.MustTimeValue("13:00").At(date, loc))
	results := []CatchResult{Classify(periods[1], at, model.DefaultSettings())}

	next := SelectNext(results, false)
	require.NotNil(t, next)
	assert.Equal(t, model.PrayerJumaa, next.Kind)
	assert.True(t, next.PrayerInstant.Equal(model.MustTimeValue("13:30").At(date, loc)))
}
