package models

import "time"

// Pollutant codes as reported by CPCB station feeds.
const (
	PollutantPM25 = "pm25"
	PollutantPM10 = "pm10"
	PollutantNO2  = "no2"
	PollutantO3   = "o3"
	PollutantSO2  = "so2"
	PollutantCO   = "co"
	PollutantNH3  = "nh3"
)

// AqiObservation is one reading for a monitored location. Observations are
// immutable once built; a newer observation supersedes the previous one.
type AqiObservation struct {
	Value         int                `json:"value"`
	Category      Category           `json:"category"`
	Pollutants    map[string]float64 `json:"pollutants,omitempty"`
	ObservedAt    time.Time          `json:"observed_at"`
	LocationLabel string             `json:"location_label"`
}

// NewObservation builds an observation with the category derived from the
// value, so the two can never disagree.
func NewObservation(value int, pollutants map[string]float64, observedAt time.Time, locationLabel string) *AqiObservation {
	return &AqiObservation{
		Value:         value,
		Category:      CategoryForAQI(value),
		Pollutants:    pollutants,
		ObservedAt:    observedAt,
		LocationLabel: locationLabel,
	}
}

// Station is a ground monitoring station as reported by the upstream feed.
type Station struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Latitude   float64            `json:"latitude"`
	Longitude  float64            `json:"longitude"`
	AQI        int                `json:"aqi"`
	Pollutants map[string]float64 `json:"pollutants,omitempty"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (s *Station) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
	}
}
