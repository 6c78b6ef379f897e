package engine

import "github.com/mraafat89/catch-a-prayer/internal/model"

// combinable pairs for travelers: Dhuhr+Asr and Maghrib+Isha. Fajr and
// Jumuah never combine.
var combinablePairs = [][2]model.PrayerKind{
	{model.PrayerDhuhr, model.PrayerAsr},
	{model.PrayerMaghrib, model.PrayerIsha},
}

// EvaluateCombination upgrades a single-prayer result into a
// combination result when travel mode permits one. base must be the
// classification of the period containing the arrival. Returns nil when
// no combination applies; a cannot_catch base is never upgraded.
func EvaluateCombination(periods []PrayerPeriod, base CatchResult) *CatchResult {
	if !base.Status.CanCatch() || base.Period.PeriodKind != PeriodNormal {
		return nil
	}
	at := base.Arrival.Instant
	if !base.Period.Contains(at) {
		return nil
	}

	for _, pair := range combinablePairs {
		early, late := pair[0], pair[1]

		switch base.Kind {
		case early:
			if findPeriod(periods, late) == nil {
				continue
			}
			upgraded := base
			upgraded.Status = model.StatusCombinationEarly
			upgraded.BaseStatus = base.Status
			upgraded.CombinationPartner = late
			upgraded.Message = statusMessage(upgraded)
			return &upgraded

		case late:
			earlyPeriod := findPeriod(periods, early)
			if earlyPeriod == nil || at.Before(earlyPeriod.Adhan) {
				continue
			}
			upgraded := base
			upgraded.Status = model.StatusCombinationLate
			upgraded.BaseStatus = base.Status
			upgraded.CombinationPartner = early
			upgraded.Message = statusMessage(upgraded)
			return &upgraded
		}
	}

	return nil
}

func findPeriod(periods []PrayerPeriod, kind model.PrayerKind) *PrayerPeriod {
	for i := range periods {
		if periods[i].Kind == kind && periods[i].PeriodKind == PeriodNormal {
			return &periods[i]
		}
	}
	return nil
}
