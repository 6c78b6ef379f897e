package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

func buildDay(t *testing.T) []PrayerPeriod {
	t.Helper()
	loc := bayArea(t)
	periods, err := WindowBuilder{}.Build(tuesday(loc), loc, dayTimes(), nil, nil, false)
	require.NoError(t, err)
	return periods
}

func TestCombinationEarly(t *testing.T) {
	loc := bayArea(t)
	periods := buildDay(t)
	settings := model.DefaultSettings()

	// In the Dhuhr window before Iqama: Asr can be brought forward.
	base := Classify(periods[1], arriveAt(model.MustTimeValue("12:50").At(tuesday(loc), loc)), settings)
	require.Equal(t, model.StatusCanCatchWithImam, base.Status)

	upgraded := EvaluateCombination(periods, base)
	require.NotNil(t, upgraded)
	assert.Equal(t, model.StatusCombinationEarly, upgraded.Status)
	assert.Equal(t, model.StatusCanCatchWithImam, upgraded.BaseStatus)
	assert.Equal(t, model.PrayerAsr, upgraded.CombinationPartner)
	assert.Contains(t, upgraded.Message, "Jam' Taqdeem")

	// Ranking follows the base status, not the combination label.
	assert.Equal(t, 0, upgraded.Rank())
}

func TestCombinationLate(t *testing.T) {
	loc := bayArea(t)
	periods := buildDay(t)
	settings := model.DefaultSettings()

	// In the Asr window after the Dhuhr Adhan has passed: Dhuhr can be
	// made up during Asr.
	base := Classify(periods[2], arriveAt(model.MustTimeValue("16:40").At(tuesday(loc), loc)), settings)
	require.Equal(t, model.StatusCanCatchAfterImam, base.Status)

	upgraded := EvaluateCombination(periods, base)
	require.NotNil(t, upgraded)
	assert.Equal(t, model.StatusCombinationLate, upgraded.Status)
	assert.Equal(t, model.StatusCanCatchAfterImam, upgraded.BaseStatus)
	assert.Equal(t, model.PrayerDhuhr, upgraded.CombinationPartner)
	assert.Contains(t, upgraded.Message, "Jam' Ta'kheer")
	assert.Equal(t, 1, upgraded.Rank())
}

func TestCombinationMaghribIsha(t *testing.T) {
	loc := bayArea(t)
	periods := buildDay(t)
	settings := model.DefaultSettings()

	base := Classify(periods[3], arriveAt(model.MustTimeValue("19:15").At(tuesday(loc), loc)), settings)
	upgraded := EvaluateCombination(periods, base)
	require.NotNil(t, upgraded)
	assert.Equal(t, model.StatusCombinationEarly, upgraded.Status)
	assert.Equal(t, model.PrayerIsha, upgraded.CombinationPartner)
}

func TestCombinationNeverUpgradesFajr(t *testing.T) {
	loc := bayArea(t)
	periods := buildDay(t)

	base := Classify(periods[0], arriveAt(model.MustTimeValue("05:55").At(tuesday(loc), loc)), model.DefaultSettings())
	require.Equal(t, model.StatusCanCatchWithImam, base.Status)

	assert.Nil(t, EvaluateCombination(periods, base))
}

func TestCombinationNeverUpgradesUncatchable(t *testing.T) {
	periods := buildDay(t)

	// Arriving at the Dhuhr period's end classifies as cannot_catch.
	base := Classify(periods[1], arriveAt(periods[1].End), model.DefaultSettings())
	require.Equal(t, model.StatusCannotCatch, base.Status)

	assert.Nil(t, EvaluateCombination(periods, base))
}

func TestCombinationSkipsJumuahSessions(t *testing.T) {
	loc := bayArea(t)
	date := friday(loc)
	sessions := []model.JumuahSession{{Ordinal: 1, PrayerTime: model.MustTimeValue("13:30")}}
	periods, err := WindowBuilder{KhutbaLeadMinutes: 15}.Build(date, loc, dayTimes(), nil, sessions, true)
	require.NoError(t, err)

	base := Classify(periods[1], arriveAt(model.MustTimeValue("13:00").At(date, loc)), model.DefaultSettings())
	require.Equal(t, PeriodJumuahSession, base.Period.PeriodKind)
	require.True(t, base.Status.CanCatch())

	assert.Nil(t, EvaluateCombination(periods, base))
}
