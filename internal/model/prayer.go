package model

// PrayerKind identifies one of the daily prayers, or Jumuah on Fridays.
// The string values are serialized to clients and must not change.
type PrayerKind string

const (
	PrayerFajr    PrayerKind = "fajr"
	PrayerDhuhr   PrayerKind = "dhuhr"
	PrayerAsr     PrayerKind = "asr"
	PrayerMaghrib PrayerKind = "maghrib"
	PrayerIsha    PrayerKind = "isha"
	PrayerJumaa   PrayerKind = "jumaa"
)

// CanonicalOrder is the Islamic daily cycle. Jumuah takes Dhuhr's slot
// on Fridays and is not listed here.
var CanonicalOrder = []PrayerKind{
	PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha,
}

// cycleIndex returns the position of a kind in the daily cycle.
// Jumuah shares Dhuhr's slot.
func (k PrayerKind) cycleIndex() int {
	switch k {
	case PrayerFajr:
		return 0
	case PrayerDhuhr, PrayerJumaa:
		return 1
	case PrayerAsr:
		return 2
	case PrayerMaghrib:
		return 3
	case PrayerIsha:
		return 4
	}
	return -1
}

// Before reports whether k precedes other in the daily cycle.
func (k PrayerKind) Before(other PrayerKind) bool {
	return k.cycleIndex() < other.cycleIndex()
}

// Valid reports whether k is a known prayer kind.
func (k PrayerKind) Valid() bool { return k.cycleIndex() >= 0 }

// Title returns the display form of the kind, e.g. "Fajr".
func (k PrayerKind) Title() string {
	switch k {
	case PrayerFajr:
		return "Fajr"
	case PrayerDhuhr:
		return "Dhuhr"
	case PrayerAsr:
		return "Asr"
	case PrayerMaghrib:
		return "Maghrib"
	case PrayerIsha:
		return "Isha"
	case PrayerJumaa:
		return "Jumaa"
	}
	return string(k)
}

// CatchStatus classifies whether a prayer can still be reached.
// The string values cross the service boundary and must stay stable.
type CatchStatus string

const (
	StatusCanCatchWithImam  CatchStatus = "can_catch_with_imam"
	StatusCanCatchAfterImam CatchStatus = "can_catch_after_imam"
	StatusCanCatchSolo      CatchStatus = "can_catch_solo"
	StatusCombinationEarly  CatchStatus = "can_catch_combination_early"
	StatusCombinationLate   CatchStatus = "can_catch_combination_late"
	StatusCanCatchDelayed   CatchStatus = "can_catch_delayed"
	StatusCannotCatch       CatchStatus = "cannot_catch"
	// StatusMissed is kept for wire compatibility with older clients;
	// the classifier reports past periods as StatusCannotCatch.
	StatusMissed  CatchStatus = "missed"
	StatusUnknown CatchStatus = "unknown"
)

// Rank orders statuses by desirability, best first. Combination
// statuses rank where their base single-prayer status would; callers
// holding a base status should rank that instead.
func (s CatchStatus) Rank() int {
	switch s {
	case StatusCanCatchWithImam:
		return 0
	case StatusCanCatchAfterImam:
		return 1
	case StatusCanCatchSolo, StatusCombinationEarly, StatusCombinationLate:
		return 2
	case StatusCanCatchDelayed:
		return 3
	case StatusCannotCatch:
		return 4
	case StatusMissed:
		return 5
	}
	return 6
}

// CanCatch reports whether the status represents a reachable prayer.
func (s CatchStatus) CanCatch() bool {
	switch s {
	case StatusCannotCatch, StatusMissed, StatusUnknown:
		return false
	}
	return true
}

// RawPrayerTime is one scraped (or defaulted) prayer entry for a day.
// Iqama is nil when the mosque publishes Adhan only.
type RawPrayerTime struct {
	Kind  PrayerKind `json:"prayer_name"`
	Adhan TimeValue  `json:"adhan_time"`
	Iqama *TimeValue `json:"iqama_time,omitempty"`
}

// JumuahSession is one published Friday prayer session. Mosques may
// hold several back to back; zero sessions means Dhuhr stays active.
type JumuahSession struct {
	Ordinal         int        `json:"ordinal"`
	KhutbaStart     *TimeValue `json:"khutba_start,omitempty"`
	PrayerTime      TimeValue  `json:"prayer_time"`
	DurationMinutes int        `json:"estimated_duration_minutes,omitempty"`
	ImamName        string     `json:"imam_name,omitempty"`
	Language        string     `json:"language,omitempty"`
	KhutbaTopic     string     `json:"khutba_topic,omitempty"`
}

// MosqueSchedule is one day's resolved raw times for one mosque, as
// produced by the scraping collaborator (or the default table).
type MosqueSchedule struct {
	Times    []RawPrayerTime `json:"times"`
	Sunrise  *TimeValue      `json:"sunrise,omitempty"`
	Jumuah   []JumuahSession `json:"jumuah_sessions,omitempty"`
	Source   string          `json:"source,omitempty"`
	Timezone string          `json:"timezone,omitempty"`
}

// TimeFor returns the raw entry for a kind, or nil.
func (s *MosqueSchedule) TimeFor(kind PrayerKind) *RawPrayerTime {
	for i := range s.Times {
		if s.Times[i].Kind == kind {
			return &s.Times[i]
		}
	}
	return nil
}
