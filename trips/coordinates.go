package trips

import "github.com/jrsteele09/go-travel-client/api"

// MarkerKind distinguishes what a map marker points at.
type MarkerKind string

const (
	MarkerAttraction    MarkerKind = "attraction"
	MarkerRestaurant    MarkerKind = "restaurant"
	MarkerAccommodation MarkerKind = "accommodation"
)

// Marker is a renderable map coordinate. The map widget is presentation-only
// and consumes these as an opaque list.
type Marker struct {
	Kind      MarkerKind
	Name      string
	Latitude  float64
	Longitude float64
	Day       int // 0 for accommodations, which are not day-bound
}

// Coordinates flattens a trip plan into the marker list the map widget
// renders. Entries without coordinates are skipped.
func Coordinates(plan api.TripPlan) []Marker {
	var markers []Marker

	for _, day := range plan.DailyItineraries {
		for _, a := range day.Attractions {
			if a.Latitude == 0 && a.Longitude == 0 {
				continue
			}
			markers = append(markers, Marker{
				Kind:      MarkerAttraction,
				Name:      a.Name,
				Latitude:  a.Latitude,
				Longitude: a.Longitude,
				Day:       day.Day,
			})
		}
		for _, r := range day.Restaurants {
			if r.Latitude == 0 && r.Longitude == 0 {
				continue
			}
			markers = append(markers, Marker{
				Kind:      MarkerRestaurant,
				Name:      r.Name,
				Latitude:  r.Latitude,
				Longitude: r.Longitude,
				Day:       day.Day,
			})
		}
	}

	for _, acc := range plan.Accommodations {
		if acc.Latitude == 0 && acc.Longitude == 0 {
			continue
		}
		markers = append(markers, Marker{
			Kind:      MarkerAccommodation,
			Name:      acc.Name,
			Latitude:  acc.Latitude,
			Longitude: acc.Longitude,
		})
	}

	return markers
}
