package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

func TestBuildBoardPayload(t *testing.T) {
	iqama := model.TimeValue{Hour: 13, Minute: 0}
	schedule := &model.MosqueSchedule{Times: []model.RawPrayerTime{
		{Kind: model.PrayerDhuhr, Adhan: model.TimeValue{Hour: 12, Minute: 45}, Iqama: &iqama},
		{Kind: model.PrayerFajr, Adhan: model.TimeValue{Hour: 5, Minute: 50}},
	}}

	payload := BuildBoardPayload("Masjid Al-Noor", time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC), schedule)

	assert.Equal(t, "Masjid Al-Noor", payload.MosqueName)
	assert.Equal(t, "AUGUST 5, 2025", payload.Date)

	// Rows come out in canonical order regardless of schedule order.
	require.Len(t, payload.Prayers, 2)
	assert.Equal(t, BoardPrayer{Name: "FAJR", Time: "05:50", Period: "AM"}, payload.Prayers[0])
	assert.Equal(t, BoardPrayer{Name: "DHUHR", Time: "12:45", Period: "PM", Iqama: "01:00"}, payload.Prayers[1])
}

func TestPublishWithoutClientIsNoop(t *testing.T) {
	assert.NoError(t, PublishTimetable("m1", BoardPayload{MosqueName: "Test"}))
}
