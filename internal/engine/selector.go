package engine

import (
	"time"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

// NextPrayerSummary is the single recommendation surfaced per mosque.
type NextPrayerSummary struct {
	Kind                 model.PrayerKind  `json:"prayer"`
	Status               model.CatchStatus `json:"status"`
	CanCatch             bool              `json:"can_catch"`
	ArrivalInstant       time.Time         `json:"arrival_time"`
	PrayerInstant        time.Time         `json:"prayer_time"`
	TravelTimeMinutes    int               `json:"travel_time_minutes"`
	TimeRemainingMinutes int               `json:"time_remaining_minutes"`
	Message              string            `json:"message"`
	IsDelayed            bool              `json:"is_delayed"`
	CombinationPartner   model.PrayerKind  `json:"combination_partner,omitempty"`
	TimeUntilNextPrayer  *int              `json:"time_until_next_prayer,omitempty"`
}

// SelectNext picks the first catchable result in period order.
// Combination results only stand when travel mode is on; they are
// produced that way, so selection is a plain ordered scan.
func SelectNext(results []CatchResult, travelMode bool) *NextPrayerSummary {
	for _, r := range results {
		if !r.Status.CanCatch() {
			continue
		}
		if !travelMode && (r.Status == model.StatusCombinationEarly || r.Status == model.StatusCombinationLate) {
			continue
		}
		summary := summarize(r)
		return &summary
	}
	return nil
}

func summarize(r CatchResult) NextPrayerSummary {
	prayerInstant := r.Period.Adhan
	if r.Period.KhutbaBoundary != nil {
		prayerInstant = *r.Period.KhutbaBoundary
	} else if r.Period.Iqama != nil {
		prayerInstant = *r.Period.Iqama
	}

	travelMinutes := int(r.Arrival.Instant.Sub(r.Arrival.Departure).Minutes())
	if travelMinutes < 0 {
		travelMinutes = 0
	}

	return NextPrayerSummary{
		Kind:                 r.Kind,
		Status:               r.Status,
		CanCatch:             r.Status.CanCatch(),
		ArrivalInstant:       r.Arrival.Instant,
		PrayerInstant:        prayerInstant,
		TravelTimeMinutes:    travelMinutes,
		TimeRemainingMinutes: r.TimeRemainingMinutes,
		Message:              r.Message,
		IsDelayed:            r.Status == model.StatusCanCatchDelayed,
		CombinationPartner:   r.CombinationPartner,
		TimeUntilNextPrayer:  r.TimeUntilNextPrayer,
	}
}
