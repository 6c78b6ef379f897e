// Package engine is the prayer catchability decision core: a pure
// computation from (schedule, travel estimate, current instant,
// settings) to a classified status per prayer and a next-prayer
// recommendation. It performs no I/O and never reads the system clock;
// identical inputs always produce identical output.
package engine

import (
	"errors"
	"time"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

// Engine holds the tunables the decision cascade depends on. Safe for
// concurrent use; Evaluate keeps no state between calls.
type Engine struct {
	Windows WindowBuilder
	// SunriseGapMinutes estimates Shorooq as Fajr Adhan plus this gap
	// when the schedule carries no sunrise time.
	SunriseGapMinutes int
	EstimateSunrise   bool
}

func New() *Engine {
	return &Engine{
		Windows:           WindowBuilder{KhutbaLeadMinutes: 15},
		SunriseGapMinutes: 90,
		EstimateSunrise:   true,
	}
}

// Request carries everything one classification pass needs. Now is the
// user's current instant, passed explicitly.
type Request struct {
	Schedule *model.MosqueSchedule
	Location *time.Location
	Now      time.Time
	Travel   *model.TravelInfo
	Settings model.Settings
}

// Evaluation is the engine's output for one mosque: one result per
// period of the mosque-local day plus the selected recommendation.
type Evaluation struct {
	Results []CatchResult      `json:"catch_results"`
	Next    *NextPrayerSummary `json:"next_prayer,omitempty"`
}

// Evaluate classifies one mosque's day. A malformed schedule gets the
// offending prayers replaced with defaults and one retry; a missing
// travel estimate degrades every result to unknown instead of failing.
func (e *Engine) Evaluate(req Request) (Evaluation, error) {
	localNow := req.Now.In(req.Location)
	isFriday := localNow.Weekday() == time.Friday

	times := e.resolvedTimes(req.Schedule)
	sunrise := e.resolvedSunrise(req.Schedule, times)

	jumuah := req.Schedule.Jumuah
	periods, err := e.Windows.Build(localNow, req.Location, times, sunrise, jumuah, isFriday)
	if err != nil {
		ise, ok := AsInvalidSchedule(err)
		if !ok {
			return Evaluation{}, err
		}
		switch {
		case ise.Sunrise:
			sunrise = nil
		case kindsContain(ise.Kinds, model.PrayerJumaa):
			// Malformed sessions have no default to substitute; the
			// day falls back to a plain Dhuhr.
			jumuah = nil
		default:
			times = substituteDefaults(times, ise.Kinds)
		}
		periods, err = e.Windows.Build(localNow, req.Location, times, sunrise, jumuah, isFriday)
		if err != nil {
			return Evaluation{}, err
		}
	}

	arrival, err := EstimateArrival(req.Now, req.Travel, req.Settings.TravelBufferMinutes, req.Location)
	if err != nil {
		if errors.Is(err, ErrMissingTravelEstimate) {
			return Evaluation{Results: unknownResults(periods)}, nil
		}
		return Evaluation{}, err
	}

	containing := containingPeriod(periods, arrival.Instant)

	results := make([]CatchResult, 0, len(periods))
	for i, p := range periods {
		r := Classify(p, arrival, req.Settings)
		if req.Settings.TravelMode && i == containing {
			if upgraded := EvaluateCombination(periods, r); upgraded != nil {
				r = *upgraded
			}
		}
		results = append(results, r)
	}

	ev := Evaluation{Results: results}
	ev.Next = SelectNext(results, req.Settings.TravelMode)
	if ev.Next == nil {
		ev.Next = e.tomorrowFajr(localNow, req.Location, times, arrival, req.Settings)
	}
	return ev, nil
}

// resolvedTimes fills any missing prayer kind from the default table so
// the builder always sees a complete day.
func (e *Engine) resolvedTimes(schedule *model.MosqueSchedule) []model.RawPrayerTime {
	defaults := defaultTimes()
	times := make([]model.RawPrayerTime, 0, len(model.CanonicalOrder))
	for _, kind := range model.CanonicalOrder {
		if rt := schedule.TimeFor(kind); rt != nil {
			times = append(times, *rt)
			continue
		}
		times = append(times, defaults[kind])
	}
	return times
}

// resolvedSunrise prefers the schedule's Shorooq time and otherwise
// estimates it from the Fajr Adhan. An estimate that would not fall
// inside the Fajr window is dropped rather than reported as an error.
func (e *Engine) resolvedSunrise(schedule *model.MosqueSchedule, times []model.RawPrayerTime) *model.TimeValue {
	if schedule.Sunrise != nil {
		return schedule.Sunrise
	}
	if !e.EstimateSunrise {
		return nil
	}

	var fajr, dhuhr *model.TimeValue
	for i := range times {
		switch times[i].Kind {
		case model.PrayerFajr:
			fajr = &times[i].Adhan
		case model.PrayerDhuhr:
			dhuhr = &times[i].Adhan
		}
	}
	if fajr == nil || dhuhr == nil {
		return nil
	}

	estimate := addMinutes(*fajr, e.SunriseGapMinutes)
	if !minutesOfDayBetween(*fajr, estimate, *dhuhr) {
		return nil
	}
	return &estimate
}

func kindsContain(kinds []model.PrayerKind, kind model.PrayerKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func substituteDefaults(times []model.RawPrayerTime, kinds []model.PrayerKind) []model.RawPrayerTime {
	defaults := defaultTimes()
	out := make([]model.RawPrayerTime, len(times))
	copy(out, times)
	for i := range out {
		for _, kind := range kinds {
			if out[i].Kind == kind || (kind == model.PrayerJumaa && out[i].Kind == model.PrayerDhuhr) {
				out[i] = defaults[out[i].Kind]
			}
		}
	}
	return out
}

func unknownResults(periods []PrayerPeriod) []CatchResult {
	results := make([]CatchResult, 0, len(periods))
	for _, p := range periods {
		r := CatchResult{
			Kind:   p.Kind,
			Status: model.StatusUnknown,
			Period: p,
		}
		r.Message = statusMessage(r)
		results = append(results, r)
	}
	return results
}

// tomorrowFajr builds the next day's Fajr recommendation once every
// period of today has passed.
func (e *Engine) tomorrowFajr(localNow time.Time, loc *time.Location, times []model.RawPrayerTime, arrival ArrivalEstimate, settings model.Settings) *NextPrayerSummary {
	var fajr, dhuhr *model.RawPrayerTime
	for i := range times {
		switch times[i].Kind {
		case model.PrayerFajr:
			fajr = &times[i]
		case model.PrayerDhuhr:
			dhuhr = &times[i]
		}
	}
	if fajr == nil || dhuhr == nil {
		return nil
	}

	tomorrow := localNow.AddDate(0, 0, 1)
	period := PrayerPeriod{
		Kind:       model.PrayerFajr,
		PeriodKind: PeriodNormal,
		Start:      fajr.Adhan.At(tomorrow, loc),
		End:        dhuhr.Adhan.At(tomorrow, loc),
		Adhan:      fajr.Adhan.At(tomorrow, loc),
	}
	if fajr.Iqama != nil {
		iq := fajr.Iqama.At(tomorrow, loc)
		period.Iqama = &iq
	}

	summary := summarize(Classify(period, arrival, settings))
	return &summary
}

// addMinutes advances a wall-clock value, wrapping at midnight.
func addMinutes(tv model.TimeValue, mins int) model.TimeValue {
	total := (tv.Hour*60 + tv.Minute + mins) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return model.TimeValue{Hour: total / 60, Minute: total % 60}
}

// minutesOfDayBetween reports a < b < c on the wall clock.
func minutesOfDayBetween(a, b, c model.TimeValue) bool {
	am := a.Hour*60 + a.Minute
	bm := b.Hour*60 + b.Minute
	cm := c.Hour*60 + c.Minute
	return am < bm && bm < cm
}
