package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat is returned when a scraped time string cannot be
// normalized. The caller substitutes a default time for that prayer
// instead of aborting the day.
var ErrInvalidTimeFormat = fmt.Errorf("invalid time format")

// TimeValue is a wall-clock time of day. All free-text parsing happens
// here, at the boundary; the engine only ever sees TimeValues anchored
// to a date and timezone.
type TimeValue struct {
	Hour   int
	Minute int
}

var timePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(AM|PM|am|pm)?`)

// ParseTimeValue normalizes strings like "15:02", "3:02 PM" or
// "12:30pm" into a TimeValue.
func ParseTimeValue(raw string) (TimeValue, error) {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return TimeValue{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	switch strings.ToUpper(m[3]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 {
		return TimeValue{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}

	return TimeValue{Hour: hour, Minute: minute}, nil
}

// MustTimeValue parses raw or panics. Test and default-table helper.
func MustTimeValue(raw string) TimeValue {
	tv, err := ParseTimeValue(raw)
	if err != nil {
		panic(err)
	}
	return tv
}

// At anchors the wall-clock value to a calendar date in a timezone.
func (tv TimeValue) At(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), tv.Hour, tv.Minute, 0, 0, loc)
}

// String renders the 24-hour "HH:MM" form used on the wire.
func (tv TimeValue) String() string {
	return fmt.Sprintf("%02d:%02d", tv.Hour, tv.Minute)
}

// Clock12 renders the 12-hour form used in user-facing messages,
// e.g. "6:00 AM".
func (tv TimeValue) Clock12() string {
	base := time.Date(2000, 1, 1, tv.Hour, tv.Minute, 0, 0, time.UTC)
	return strings.TrimPrefix(base.Format("03:04 PM"), "0")
}

func (tv TimeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(tv.String())
}

func (tv *TimeValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeValue(s)
	if err != nil {
		return err
	}
	*tv = parsed
	return nil
}
