package engine

import (
	"time"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

// ArrivalEstimate is the computed mosque-local arrival instant for the
// current request. Never stored.
type ArrivalEstimate struct {
	Instant   time.Time `json:"instant"`
	Departure time.Time `json:"source_departure_instant"`
}

// EstimateArrival adds the travel duration (plus the configured buffer)
// to the user's current instant and expresses the result in the mosque
// timezone. The arithmetic happens on the absolute instant, so DST and
// date-line crossings fall out correctly.
func EstimateArrival(departure time.Time, travel *model.TravelInfo, bufferMinutes int, mosqueTZ *time.Location) (ArrivalEstimate, error) {
	if travel == nil {
		return ArrivalEstimate{}, ErrMissingTravelEstimate
	}

	total := time.Duration(travel.DurationSeconds)*time.Second +
		time.Duration(bufferMinutes)*time.Minute

	return ArrivalEstimate{
		Instant:   departure.Add(total).In(mosqueTZ),
		Departure: departure,
	}, nil
}
