package engine

import "github.com/mraafat89/catch-a-prayer/internal/model"

// defaultTimes is the fallback timetable used when a prayer time is
// missing or malformed. Values track a typical September day in the SF
// Bay Area.
func defaultTimes() map[model.PrayerKind]model.RawPrayerTime {
	iqama := func(s string) *model.TimeValue {
		tv := model.MustTimeValue(s)
		return &tv
	}
	return map[model.PrayerKind]model.RawPrayerTime{
		model.PrayerFajr:    {Kind: model.PrayerFajr, Adhan: model.MustTimeValue("05:50"), Iqama: iqama("06:00")},
		model.PrayerDhuhr:   {Kind: model.PrayerDhuhr, Adhan: model.MustTimeValue("12:45"), Iqama: iqama("13:00")},
		model.PrayerAsr:     {Kind: model.PrayerAsr, Adhan: model.MustTimeValue("16:15"), Iqama: iqama("16:30")},
		model.PrayerMaghrib: {Kind: model.PrayerMaghrib, Adhan: model.MustTimeValue("19:10"), Iqama: iqama("19:20")},
		model.PrayerIsha:    {Kind: model.PrayerIsha, Adhan: model.MustTimeValue("20:30"), Iqama: iqama("20:45")},
	}
}

// DefaultSchedule is the full fallback schedule used when scraping and
// the prayer-times API both fail.
func DefaultSchedule() *model.MosqueSchedule {
	defaults := defaultTimes()
	times := make([]model.RawPrayerTime, 0, len(model.CanonicalOrder))
	for _, kind := range model.CanonicalOrder {
		times = append(times, defaults[kind])
	}
	return &model.MosqueSchedule{Times: times, Source: "defaults"}
}
