package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrayerKindCycle(t *testing.T) {
	assert.True(t, PrayerFajr.Before(PrayerDhuhr))
	assert.True(t, PrayerMaghrib.Before(PrayerIsha))
	assert.False(t, PrayerIsha.Before(PrayerFajr))

	// Jumuah occupies the Dhuhr slot.
	assert.True(t, PrayerJumaa.Before(PrayerAsr))
	assert.False(t, PrayerJumaa.Before(PrayerDhuhr))

	assert.True(t, PrayerJumaa.Valid())
	assert.False(t, PrayerKind("tahajjud").Valid())
}

func TestCatchStatusRanking(t *testing.T) {
	ordered := []CatchStatus{
		StatusCanCatchWithImam,
		StatusCanCatchAfterImam,
		StatusCanCatchSolo,
		StatusCanCatchDelayed,
		StatusCannotCatch,
		StatusMissed,
		StatusUnknown,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Rank(), ordered[i].Rank(), "%s vs %s", ordered[i-1], ordered[i])
	}

	// Combination statuses rank alongside solo.
	assert.Equal(t, StatusCanCatchSolo.Rank(), StatusCombinationEarly.Rank())
	assert.Equal(t, StatusCanCatchSolo.Rank(), StatusCombinationLate.Rank())
}

func TestCatchStatusCanCatch(t *testing.T) {
	for _, s := range []CatchStatus{
		StatusCanCatchWithImam, StatusCanCatchAfterImam, StatusCanCatchSolo,
		StatusCombinationEarly, StatusCombinationLate, StatusCanCatchDelayed,
	} {
		assert.True(t, s.CanCatch(), s)
	}
	for _, s := range []CatchStatus{StatusCannotCatch, StatusMissed, StatusUnknown} {
		assert.False(t, s.CanCatch(), s)
	}
}

func TestScheduleTimeFor(t *testing.T) {
	s := &MosqueSchedule{Times: []RawPrayerTime{
		{Kind: PrayerFajr, Adhan: TimeValue{5, 50}},
		{Kind: PrayerDhuhr, Adhan: TimeValue{12, 45}},
	}}

	assert.NotNil(t, s.TimeFor(PrayerFajr))
	assert.Nil(t, s.TimeFor(PrayerIsha))
}
