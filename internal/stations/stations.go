package stations

import (
	"math"

	"github.com/arnv-dev/go-aqi-alerts/internal/models"
)

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// coordinates (haversine formula).
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Nearest returns the station closest to the given coordinate. Distance ties
// resolve to the lower station ID so repeated queries are stable. The second
// return is false when the slice is empty.
func Nearest(list []models.Station, lat, lon float64) (models.Station, bool) {
	if len(list) == 0 {
		return models.Station{}, false
	}

	best := list[0]
	bestDist := Distance(lat, lon, best.Latitude, best.Longitude)
	for _, st := range list[1:] {
		d := Distance(lat, lon, st.Latitude, st.Longitude)
		if d < bestDist || (d == bestDist && st.ID < best.ID) {
			best = st
			bestDist = d
		}
	}
	return best, true
}
