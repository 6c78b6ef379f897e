package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

// PeriodKind tags the variant of a prayer period.
type PeriodKind string

const (
	PeriodNormal        PeriodKind = "normal"
	PeriodDelayedMakeup PeriodKind = "delayed_makeup"
	PeriodJumuahSession PeriodKind = "jumuah_session"
)

// PrayerPeriod is one half-open window [Start, End) of the mosque-local
// day during which a particular prayer is the active one. Periods for a
// day are contiguous and non-overlapping; the last period ends at the
// next day's Fajr Adhan.
type PrayerPeriod struct {
	Kind       model.PrayerKind `json:"prayer"`
	PeriodKind PeriodKind       `json:"period_kind"`
	Session    int              `json:"session,omitempty"`
	Start      time.Time        `json:"start"`
	End        time.Time        `json:"end"`
	Adhan      time.Time        `json:"adhan"`
	Iqama      *time.Time       `json:"iqama,omitempty"`
	// KhutbaStart and KhutbaBoundary are set for Jumuah sessions only.
	// KhutbaBoundary is the published prayer time: arriving before it
	// catches the full sermon.
	KhutbaStart    *time.Time `json:"khutba_start,omitempty"`
	KhutbaBoundary *time.Time `json:"khutba_boundary,omitempty"`
}

// Contains reports whether the arrival instant falls inside the period.
func (p PrayerPeriod) Contains(at time.Time) bool {
	return !at.Before(p.Start) && at.Before(p.End)
}

// WindowBuilder turns one day's raw times into the ordered period list,
// applying the Fajr sunrise split and the Friday Jumuah override.
type WindowBuilder struct {
	// KhutbaLeadMinutes backfills a session start when the mosque
	// publishes a prayer time but no khutba time.
	KhutbaLeadMinutes int
}

// Build anchors each raw Adhan to date in loc and derives the day's
// periods. sunrise may be nil (no Fajr split). sessions are ignored
// unless isFriday; an empty session list on a Friday leaves Dhuhr in
// place.
func (b WindowBuilder) Build(
	date time.Time,
	loc *time.Location,
	times []model.RawPrayerTime,
	sunrise *model.TimeValue,
	sessions []model.JumuahSession,
	isFriday bool,
) ([]PrayerPeriod, error) {
	anchored := make(map[model.PrayerKind]model.RawPrayerTime, len(times))
	for _, rt := range times {
		anchored[rt.Kind] = rt
	}
	for _, kind := range model.CanonicalOrder {
		if _, ok := anchored[kind]; !ok {
			return nil, &InvalidScheduleError{
				Kinds:  []model.PrayerKind{kind},
				Reason: "missing prayer time",
			}
		}
	}

	adhan := func(kind model.PrayerKind) time.Time {
		return anchored[kind].Adhan.At(date, loc)
	}

	// The five Adhan instants must be strictly increasing.
	for i := 1; i < len(model.CanonicalOrder); i++ {
		prev, cur := model.CanonicalOrder[i-1], model.CanonicalOrder[i]
		if !adhan(cur).After(adhan(prev)) {
			return nil, &InvalidScheduleError{
				Kinds:  []model.PrayerKind{cur},
				Reason: fmt.Sprintf("%s adhan not after %s adhan", cur, prev),
			}
		}
	}

	if sunrise != nil {
		at := sunrise.At(date, loc)
		if !at.After(adhan(model.PrayerFajr)) || !at.Before(adhan(model.PrayerDhuhr)) {
			return nil, &InvalidScheduleError{
				Kinds:   []model.PrayerKind{model.PrayerFajr},
				Reason:  "sunrise outside the Fajr window",
				Sunrise: true,
			}
		}
	}

	var periods []PrayerPeriod
	for _, kind := range model.CanonicalOrder {
		raw := anchored[kind]
		start := adhan(kind)

		var iqama *time.Time
		if raw.Iqama != nil {
			at := raw.Iqama.At(date, loc)
			if at.Before(start) {
				return nil, &InvalidScheduleError{
					Kinds:  []model.PrayerKind{kind},
					Reason: "iqama before adhan",
				}
			}
			iqama = &at
		}

		if kind == model.PrayerDhuhr && isFriday && len(sessions) > 0 {
			jumuah, err := b.jumuahPeriods(date, loc, sessions, start)
			if err != nil {
				return nil, err
			}
			periods = append(periods, jumuah...)
			continue
		}

		periods = append(periods, PrayerPeriod{
			Kind:       kind,
			PeriodKind: PeriodNormal,
			Start:      start,
			Adhan:      start,
			Iqama:      iqama,
		})
	}

	periods = b.splitFajr(periods, date, loc, sunrise)

	if err := chainPeriods(periods, adhan(model.PrayerFajr).Add(24*time.Hour)); err != nil {
		return nil, err
	}

	// Jumuah khutba boundaries only make sense inside their session.
	for _, p := range periods {
		if p.PeriodKind != PeriodJumuahSession {
			continue
		}
		if !p.KhutbaBoundary.Before(p.End) || p.KhutbaBoundary.Before(p.Start) {
			return nil, &InvalidScheduleError{
				Kinds:  []model.PrayerKind{model.PrayerJumaa},
				Reason: "khutba boundary outside session window",
			}
		}
	}

	return periods, nil
}

// jumuahPeriods expands the published sessions into one period each,
// replacing the standard Dhuhr period. Session starts default to the
// khutba time, falling back to the prayer time minus the configured
// lead.
func (b WindowBuilder) jumuahPeriods(
	date time.Time,
	loc *time.Location,
	sessions []model.JumuahSession,
	dhuhrAdhan time.Time,
) ([]PrayerPeriod, error) {
	lead := time.Duration(b.KhutbaLeadMinutes) * time.Minute
	if lead <= 0 {
		lead = 15 * time.Minute
	}

	ordered := make([]model.JumuahSession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		a := ordered[i].PrayerTime.At(date, loc)
		c := ordered[j].PrayerTime.At(date, loc)
		return a.Before(c)
	})

	periods := make([]PrayerPeriod, 0, len(ordered))
	for i, s := range ordered {
		boundary := s.PrayerTime.At(date, loc)

		var khutba time.Time
		if s.KhutbaStart != nil {
			khutba = s.KhutbaStart.At(date, loc)
		} else {
			khutba = boundary.Add(-lead)
		}
		if !boundary.After(khutba) {
			return nil, &InvalidScheduleError{
				Kinds:  []model.PrayerKind{model.PrayerJumaa},
				Reason: "prayer time not after khutba start",
			}
		}

		start := khutba
		if i == 0 && dhuhrAdhan.Before(start) {
			// The first session owns the whole Dhuhr slot so the day
			// stays contiguous even when the khutba begins late.
			start = dhuhrAdhan
		}

		kb := boundary
		ks := khutba
		periods = append(periods, PrayerPeriod{
			Kind:           model.PrayerJumaa,
			PeriodKind:     PeriodJumuahSession,
			Session:        i + 1,
			Start:          start,
			Adhan:          dhuhrAdhan,
			KhutbaStart:    &ks,
			KhutbaBoundary: &kb,
		})
	}

	return periods, nil
}

// splitFajr divides the Fajr period at sunrise into a normal window and
// a delayed-makeup window. Skipped when sunrise is unknown.
func (b WindowBuilder) splitFajr(periods []PrayerPeriod, date time.Time, loc *time.Location, sunrise *model.TimeValue) []PrayerPeriod {
	if sunrise == nil {
		return periods
	}
	at := sunrise.At(date, loc)

	out := make([]PrayerPeriod, 0, len(periods)+1)
	for i, p := range periods {
		out = append(out, p)
		if p.Kind != model.PrayerFajr || p.PeriodKind != PeriodNormal {
			continue
		}
		// The split only applies when sunrise falls strictly inside
		// the Fajr window; chainPeriods rejects it otherwise.
		if !at.After(p.Start) {
			continue
		}
		if i+1 < len(periods) && !periods[i+1].Start.After(at) {
			continue
		}
		out = append(out, PrayerPeriod{
			Kind:       model.PrayerFajr,
			PeriodKind: PeriodDelayedMakeup,
			Start:      at,
			Adhan:      p.Adhan,
		})
	}
	return out
}

// chainPeriods closes each period at the next one's start and validates
// that boundaries are strictly increasing. wrapEnd closes the last
// period (next day's Fajr Adhan).
func chainPeriods(periods []PrayerPeriod, wrapEnd time.Time) error {
	for i := range periods {
		if i+1 < len(periods) {
			periods[i].End = periods[i+1].Start
		} else {
			periods[i].End = wrapEnd
		}
		if !periods[i].End.After(periods[i].Start) {
			return &InvalidScheduleError{
				Kinds:  []model.PrayerKind{periods[i].Kind},
				Reason: "period end not after start",
			}
		}
	}
	return nil
}

// containingPeriod walks the day's periods for the one holding the
// arrival instant, or -1 when the arrival is outside the day.
func containingPeriod(periods []PrayerPeriod, at time.Time) int {
	for i, p := range periods {
		if p.Contains(at) {
			return i
		}
	}
	return -1
}
