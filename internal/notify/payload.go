package notify

import (
	"strings"
	"time"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

// BoardPrayer is one row on a mosque display board.
type BoardPrayer struct {
	Name   string `json:"name"`   // "FAJR", "DHUHR", ...
	Time   string `json:"time"`   // "05:12"
	Period string `json:"period"` // "AM" or "PM"
	Iqama  string `json:"iqama,omitempty"`
}

// BoardPayload is the daily timetable pushed to display boards
// subscribed to a mosque topic.
type BoardPayload struct {
	MosqueName string        `json:"mosque_name"`
	Date       string        `json:"date"` // "AUGUST 5, 2025"
	Prayers    []BoardPrayer `json:"prayers"`
}

// BuildBoardPayload flattens a schedule into board rows in canonical
// prayer order.
func BuildBoardPayload(mosqueName string, date time.Time, schedule *model.MosqueSchedule) BoardPayload {
	payload := BoardPayload{
		MosqueName: mosqueName,
		Date:       strings.ToUpper(date.Format("January 2, 2006")),
	}
	for _, kind := range model.CanonicalOrder {
		rt := schedule.TimeFor(kind)
		if rt == nil {
			continue
		}
		row := BoardPrayer{
			Name:   strings.ToUpper(kind.Title()),
			Time:   clock12Parts(rt.Adhan),
			Period: amPM(rt.Adhan),
		}
		if rt.Iqama != nil {
			row.Iqama = clock12Parts(*rt.Iqama)
		}
		payload.Prayers = append(payload.Prayers, row)
	}
	return payload
}

func clock12Parts(tv model.TimeValue) string {
	h := tv.Hour % 12
	if h == 0 {
		h = 12
	}
	return model.TimeValue{Hour: h, Minute: tv.Minute}.String()
}

func amPM(tv model.TimeValue) string {
	if tv.Hour >= 12 {
		return "PM"
	}
	return "AM"
}
