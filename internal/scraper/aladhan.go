package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

const aladhanBaseURL = "https://api.aladhan.com/v1"

// AladhanClient is the fallback schedule source when a mosque website
// yields nothing. It provides Adhan times and sunrise only, never
// Iqama times or Jumuah information, which are mosque-specific.
type AladhanClient struct {
	httpClient *http.Client
	// BaseURL is exported for tests.
	BaseURL string
}

func NewAladhanClient() *AladhanClient {
	return &AladhanClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    aladhanBaseURL,
	}
}

type aladhanResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings map[string]string `json:"timings"`
		Meta    struct {
			Timezone string `json:"timezone"`
		} `json:"meta"`
	} `json:"data"`
}

// FetchSchedule asks the Al Adhan API for the location's Adhan times on
// the given date.
func (c *AladhanClient) FetchSchedule(ctx context.Context, lat, lng float64, date time.Time) (*model.MosqueSchedule, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lng))
	params.Set("method", "2")

	endpoint := fmt.Sprintf("%s/timings/%s?%s", c.BaseURL, date.Format("02-01-2006"), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aladhan request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aladhan returned status %d", resp.StatusCode)
	}

	var parsed aladhanResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode aladhan response: %w", err)
	}
	if parsed.Code != http.StatusOK {
		return nil, fmt.Errorf("aladhan error: code=%d status=%s", parsed.Code, parsed.Status)
	}

	schedule := &model.MosqueSchedule{
		Source:   "aladhan",
		Timezone: parsed.Data.Meta.Timezone,
	}

	kinds := map[string]model.PrayerKind{
		"Fajr":    model.PrayerFajr,
		"Dhuhr":   model.PrayerDhuhr,
		"Asr":     model.PrayerAsr,
		"Maghrib": model.PrayerMaghrib,
		"Isha":    model.PrayerIsha,
	}
	for _, name := range []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"} {
		raw, ok := parsed.Data.Timings[name]
		if !ok {
			continue
		}
		tv, err := model.ParseTimeValue(stripTimezoneSuffix(raw))
		if err != nil {
			continue
		}
		schedule.Times = append(schedule.Times, model.RawPrayerTime{Kind: kinds[name], Adhan: tv})
	}

	if raw, ok := parsed.Data.Timings["Sunrise"]; ok {
		if tv, err := model.ParseTimeValue(stripTimezoneSuffix(raw)); err == nil {
			schedule.Sunrise = &tv
		}
	}

	if len(schedule.Times) == 0 {
		return nil, ErrNoScheduleFound
	}
	return schedule, nil
}

// stripTimezoneSuffix drops the " (BST)" the API sometimes appends.
func stripTimezoneSuffix(raw string) string {
	if i := strings.Index(raw, "("); i >= 0 {
		return strings.TrimSpace(raw[:i])
	}
	return strings.TrimSpace(raw)
}
