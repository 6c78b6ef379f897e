package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

// CatchResult is the classification of one prayer period against one
// arrival estimate.
type CatchResult struct {
	Kind   model.PrayerKind  `json:"prayer"`
	Status model.CatchStatus `json:"status"`
	// BaseStatus carries the underlying single-prayer classification
	// when Status is a combination; ranking uses it.
	BaseStatus           model.CatchStatus `json:"base_status,omitempty"`
	Arrival              ArrivalEstimate   `json:"arrival"`
	Period               PrayerPeriod      `json:"period"`
	TimeRemainingMinutes int               `json:"time_remaining_minutes"`
	Message              string            `json:"message"`
	CombinationPartner   model.PrayerKind  `json:"combination_partner,omitempty"`
	TimeUntilNextPrayer  *int              `json:"time_until_next_prayer,omitempty"`
}

// Rank orders results by desirability; combination results rank where
// their base status would.
func (r CatchResult) Rank() int {
	if r.BaseStatus != "" {
		return r.BaseStatus.Rank()
	}
	return r.Status.Rank()
}

// Classify runs the decision cascade for one period. The cascade is
// per period variant: delayed-makeup windows cap at can_catch_delayed,
// Jumuah sessions pivot on the khutba boundary, normal periods on the
// Iqama plus the congregation window.
func Classify(period PrayerPeriod, arrival ArrivalEstimate, settings model.Settings) CatchResult {
	result := CatchResult{
		Kind:    period.Kind,
		Arrival: arrival,
		Period:  period,
	}
	at := arrival.Instant

	switch period.PeriodKind {
	case PeriodDelayedMakeup:
		if at.Before(period.End) {
			result.Status = model.StatusCanCatchDelayed
			result.TimeRemainingMinutes = minutesUntil(at, period.End)
		} else {
			result.Status = model.StatusCannotCatch
		}

	case PeriodJumuahSession:
		boundary := *period.KhutbaBoundary
		switch {
		case !at.After(boundary):
			result.Status = model.StatusCanCatchWithImam
			result.TimeRemainingMinutes = minutesUntil(at, boundary)
		case at.Before(period.End):
			result.Status = model.StatusCanCatchAfterImam
			result.TimeRemainingMinutes = minutesUntil(at, period.End)
		default:
			result.Status = model.StatusCannotCatch
		}

	default: // PeriodNormal
		window := time.Duration(settings.CongregationWindowMinutes) * time.Minute
		switch {
		case period.Iqama != nil && !at.After(*period.Iqama):
			result.Status = model.StatusCanCatchWithImam
			result.TimeRemainingMinutes = minutesUntil(at, *period.Iqama)
		case period.Iqama != nil && !at.After(period.Iqama.Add(window)) && at.Before(period.End):
			result.Status = model.StatusCanCatchAfterImam
			result.TimeRemainingMinutes = minutesUntil(at, period.Iqama.Add(window))
		case at.Before(period.End):
			result.Status = model.StatusCanCatchSolo
			result.TimeRemainingMinutes = minutesUntil(at, period.End)
		default:
			result.Status = model.StatusCannotCatch
		}
	}

	if result.Status == model.StatusCanCatchAfterImam {
		mins := minutesUntil(at, period.End)
		result.TimeUntilNextPrayer = &mins
	}

	result.Message = statusMessage(result)
	return result
}

// minutesUntil is the whole-minute gap from 'from' to 'boundary',
// clamped at zero.
func minutesUntil(from, boundary time.Time) int {
	mins := int(boundary.Sub(from).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}

func formatClock(t time.Time) string {
	return strings.TrimPrefix(t.Format("03:04 PM"), "0")
}

// statusMessage renders the templated human summary. Pure substitution
// over (status, kind, partner, boundaries); no free-form generation.
func statusMessage(r CatchResult) string {
	name := r.Kind.Title()

	switch r.Status {
	case model.StatusCombinationEarly:
		return fmt.Sprintf("✅ %s + %s, Jam' Taqdeem — pray both on arrival at %s",
			name, r.CombinationPartner.Title(), formatClock(r.Arrival.Instant))
	case model.StatusCombinationLate:
		return fmt.Sprintf("✅ %s + %s, Jam' Ta'kheer — make up %s during %s",
			r.CombinationPartner.Title(), name, r.CombinationPartner.Title(), name)
	}

	if r.Period.PeriodKind == PeriodJumuahSession {
		switch r.Status {
		case model.StatusCanCatchWithImam:
			return fmt.Sprintf("✅ You can catch the full %s khutba starting at %s",
				name, formatClock(*r.Period.KhutbaStart))
		case model.StatusCanCatchAfterImam:
			return fmt.Sprintf("🟡 Khutba has started — you can still catch %s prayer", name)
		default:
			return fmt.Sprintf("❌ Cannot catch %s — the session has ended", name)
		}
	}

	switch r.Status {
	case model.StatusCanCatchWithImam:
		anchor := r.Period.Adhan
		if r.Period.Iqama != nil {
			anchor = *r.Period.Iqama
		}
		return fmt.Sprintf("✅ You can catch %s with the Imam at %s", name, formatClock(anchor))
	case model.StatusCanCatchAfterImam:
		return fmt.Sprintf("🟡 You'll arrive after Iqama but can still catch %s prayer", name)
	case model.StatusCanCatchSolo:
		return fmt.Sprintf("🟡 Congregation has finished — you can still pray %s until %s",
			name, formatClock(r.Period.End))
	case model.StatusCanCatchDelayed:
		return fmt.Sprintf("🟠 You can catch %s (delayed) until Dhuhr at %s",
			name, formatClock(r.Period.End))
	case model.StatusUnknown:
		return fmt.Sprintf("Travel time unavailable — %s status unknown", name)
	}

	if next := nextKindName(r.Kind); next != "" {
		return fmt.Sprintf("❌ Cannot catch %s — try %s instead", name, next)
	}
	return fmt.Sprintf("❌ Cannot catch %s — try tomorrow's Fajr", name)
}

func nextKindName(kind model.PrayerKind) string {
	switch kind {
	case model.PrayerFajr:
		return "Dhuhr"
	case model.PrayerDhuhr, model.PrayerJumaa:
		return "Asr"
	case model.PrayerAsr:
		return "Maghrib"
	case model.PrayerMaghrib:
		return "Isha"
	}
	return ""
}
