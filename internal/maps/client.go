// Package maps wraps the Google Maps Platform collaborators: Places
// nearby search for mosque candidates and Directions for travel
// estimates. The engine never talks to this package; it only consumes
// the resolved results.
package maps

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	gmaps "googlemaps.github.io/maps"

	"github.com/mraafat89/catch-a-prayer/internal/model"
)

// searchKeywords fan out the nearby query; results are merged and
// deduplicated on place_id.
var searchKeywords = []string{"mosque", "masjid", "islamic center"}

const maxResults = 20

type Client struct {
	inner *gmaps.Client
}

func NewClient(apiKey string, opts ...gmaps.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google maps api key is required")
	}
	opts = append([]gmaps.ClientOption{gmaps.WithAPIKey(apiKey)}, opts...)
	inner, err := gmaps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &Client{inner: inner}, nil
}

// FindNearbyMosques searches around the user's location, filters out
// non-mosque places of worship, enriches each hit with place details
// and a driving estimate, and returns at most maxResults candidates
// sorted by distance.
func (c *Client) FindNearbyMosques(ctx context.Context, lat, lng float64, radiusKm int) ([]model.Mosque, error) {
	if radiusKm <= 0 {
		radiusKm = 5
	}

	seen := make(map[string]gmaps.PlacesSearchResult)
	for _, keyword := range searchKeywords {
		resp, err := c.inner.NearbySearch(ctx, &gmaps.NearbySearchRequest{
			Location: &gmaps.LatLng{Lat: lat, Lng: lng},
			Radius:   uint(radiusKm * 1000),
			Keyword:  keyword,
			Type:     gmaps.PlaceType("place_of_worship"),
		})
		if err != nil {
			return nil, fmt.Errorf("nearby search %q: %w", keyword, err)
		}
		for _, place := range resp.Results {
			if place.PlaceID != "" && isMosque(place) {
				seen[place.PlaceID] = place
			}
		}
	}

	mosques := make([]model.Mosque, 0, len(seen))
	for _, place := range seen {
		mosque, err := c.mosqueFromPlace(ctx, place, lat, lng)
		if err != nil {
			log.Warn().Err(err).Str("place_id", place.PlaceID).Msg("skipping mosque candidate")
			continue
		}
		mosques = append(mosques, mosque)
	}

	sort.Slice(mosques, func(i, j int) bool {
		di, dj := candidateDistance(mosques[i]), candidateDistance(mosques[j])
		if di != dj {
			return di < dj
		}
		return mosques[i].PlaceID < mosques[j].PlaceID
	})

	if len(mosques) > maxResults {
		mosques = mosques[:maxResults]
	}
	return mosques, nil
}

func candidateDistance(m model.Mosque) int {
	if m.TravelInfo == nil {
		return int(^uint(0) >> 1)
	}
	return m.TravelInfo.DistanceMeters
}

// isMosque keeps places whose name suggests a mosque and drops schools,
// stores and the like that share the place_of_worship type.
func isMosque(place gmaps.PlacesSearchResult) bool {
	name := strings.ToLower(place.Name)

	keyword := false
	for _, w := range []string{"mosque", "masjid", "islamic", "muslim", "center", "community"} {
		if strings.Contains(name, w) {
			keyword = true
			break
		}
	}
	if !keyword {
		return false
	}

	for _, w := range []string{"school", "store", "restaurant", "hotel", "hospital"} {
		if strings.Contains(name, w) {
			return false
		}
	}

	worship := false
	for _, t := range place.Types {
		if t == "place_of_worship" {
			worship = true
			break
		}
	}
	return worship
}

func (c *Client) mosqueFromPlace(ctx context.Context, place gmaps.PlacesSearchResult, userLat, userLng float64) (model.Mosque, error) {
	details, err := c.inner.PlaceDetails(ctx, &gmaps.PlaceDetailsRequest{
		PlaceID: place.PlaceID,
		Fields: []gmaps.PlaceDetailsFieldMask{
			gmaps.PlaceDetailsFieldMaskFormattedPhoneNumber,
			gmaps.PlaceDetailsFieldMaskWebsite,
			gmaps.PlaceDetailsFieldMaskRatings,
			gmaps.PlaceDetailsFieldMaskUserRatingsTotal,
		},
	})
	if err != nil {
		return model.Mosque{}, fmt.Errorf("place details: %w", err)
	}

	mosque := model.Mosque{
		PlaceID: place.PlaceID,
		Name:    place.Name,
		Location: model.Location{
			Latitude:  place.Geometry.Location.Lat,
			Longitude: place.Geometry.Location.Lng,
			Address:   place.Vicinity,
		},
		PhoneNumber:      details.FormattedPhoneNumber,
		Website:          details.Website,
		Rating:           float64(details.Rating),
		UserRatingsTotal: details.UserRatingsTotal,
	}

	travel, err := c.TravelInfo(ctx, userLat, userLng, mosque.Location.Latitude, mosque.Location.Longitude)
	if err != nil {
		// A mosque without a route still shows up; the engine reports
		// it as unknown instead of guessing.
		log.Warn().Err(err).Str("place_id", place.PlaceID).Msg("no travel estimate")
	} else {
		mosque.TravelInfo = travel
	}

	return mosque, nil
}

// MosqueByPlaceID resolves a single mosque from its place_id. When the
// caller supplies their coordinates a driving estimate is attached the
// same way nearby search does it.
func (c *Client) MosqueByPlaceID(ctx context.Context, placeID string, userLat, userLng *float64) (model.Mosque, error) {
	details, err := c.inner.PlaceDetails(ctx, &gmaps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []gmaps.PlaceDetailsFieldMask{
			gmaps.PlaceDetailsFieldMaskName,
			gmaps.PlaceDetailsFieldMaskGeometry,
			gmaps.PlaceDetailsFieldMaskFormattedAddress,
			gmaps.PlaceDetailsFieldMaskFormattedPhoneNumber,
			gmaps.PlaceDetailsFieldMaskWebsite,
			gmaps.PlaceDetailsFieldMaskRatings,
			gmaps.PlaceDetailsFieldMaskUserRatingsTotal,
		},
	})
	if err != nil {
		return model.Mosque{}, fmt.Errorf("place details: %w", err)
	}

	mosque := model.Mosque{
		PlaceID: placeID,
		Name:    details.Name,
		Location: model.Location{
			Latitude:  details.Geometry.Location.Lat,
			Longitude: details.Geometry.Location.Lng,
			Address:   details.FormattedAddress,
		},
		PhoneNumber:      details.FormattedPhoneNumber,
		Website:          details.Website,
		Rating:           float64(details.Rating),
		UserRatingsTotal: details.UserRatingsTotal,
	}

	if userLat != nil && userLng != nil {
		travel, err := c.TravelInfo(ctx, *userLat, *userLng, mosque.Location.Latitude, mosque.Location.Longitude)
		if err != nil {
			log.Warn().Err(err).Str("place_id", placeID).Msg("no travel estimate")
		} else {
			mosque.TravelInfo = travel
		}
	}

	return mosque, nil
}

// TravelInfo asks Directions for a driving estimate between two points.
func (c *Client) TravelInfo(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*model.TravelInfo, error) {
	routes, _, err := c.inner.Directions(ctx, &gmaps.DirectionsRequest{
		Origin:        fmt.Sprintf("%f,%f", fromLat, fromLng),
		Destination:   fmt.Sprintf("%f,%f", toLat, toLng),
		Mode:          gmaps.TravelModeDriving,
		DepartureTime: "now",
	})
	if err != nil {
		return nil, fmt.Errorf("directions: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, fmt.Errorf("directions: no route found")
	}

	leg := routes[0].Legs[0]
	return &model.TravelInfo{
		DistanceMeters:  leg.Distance.Meters,
		DurationSeconds: int(leg.Duration / time.Second),
		DurationText:    formatDuration(leg.Duration),
	}, nil
}

func formatDuration(d time.Duration) string {
	mins := int(d.Round(time.Minute) / time.Minute)
	if mins <= 1 {
		return "1 min"
	}
	if mins < 60 {
		return fmt.Sprintf("%d mins", mins)
	}
	h, m := mins/60, mins%60
	if m == 0 {
		return fmt.Sprintf("%d hr", h)
	}
	return fmt.Sprintf("%d hr %d mins", h, m)
}
