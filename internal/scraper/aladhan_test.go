package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

const aladhanFixture = `{
  "code": 200,
  "status": "OK",
  "data": {
    "timings": {
      "Fajr": "05:50",
      "Sunrise": "06:52 (PDT)",
      "Dhuhr": "12:45",
      "Asr": "16:15",
      "Maghrib": "19:10",
      "Isha": "20:30"
    },
    "meta": {"timezone": "America/Los_Angeles"}
  }
}`

func TestFetchScheduleFromAladhan(t *testing.T) {
	var requestedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(aladhanFixture))
	}))
	defer srv.Close()

	client := NewAladhanClient()
	client.BaseURL = srv.URL

	date := time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC)
	schedule, err := client.FetchSchedule(context.Background(), 37.77, -122.41, date)
	require.NoError(t, err)

	assert.Equal(t, "/timings/09-09-2025", requestedPath)
	assert.Equal(t, "aladhan", schedule.Source)
	assert.Equal(t, "America/Los_Angeles", schedule.Timezone)

	require.Len(t, schedule.Times, 5)
	fajr := schedule.TimeFor(model.PrayerFajr)
	require.NotNil(t, fajr)
	assert.Equal(t, model.TimeValue{Hour: 5, Minute: 50}, fajr.Adhan)
	assert.Nil(t, fajr.Iqama) // the API never supplies Iqama times

	// The "(PDT)" suffix is stripped before parsing.
	require.NotNil(t, schedule.Sunrise)
	assert.Equal(t, model.TimeValue{Hour: 6, Minute: 52}, *schedule.Sunrise)
}

func TestFetchScheduleServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewAladhanClient()
	client.BaseURL = srv.URL

	_, err := client.FetchSchedule(context.Background(), 37.77, -122.41, time.Now())
	assert.Error(t, err)
}

func TestFetchScheduleAPIErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 400, "status": "Bad Request", "data": {}}`))
	}))
	defer srv.Close()

	client := NewAladhanClient()
	client.BaseURL = srv.URL

	_, err := client.FetchSchedule(context.Background(), 37.77, -122.41, time.Now())
	assert.Error(t, err)
}
