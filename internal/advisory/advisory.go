package advisory

import "github.com/arnv-dev/go-aqi-alerts/internal/models"

// Advisory is the health guidance derived from a single AQI reading.
type Advisory struct {
	Category                      models.Category   `json:"category"`
	GeneralRecommendations        []string          `json:"general_recommendations"`
	SensitiveGroupRecommendations []string          `json:"sensitive_group_recommendations"`
	MaskRecommendation            string            `json:"mask_recommendation"`
	ExerciseRecommendation        string            `json:"exercise_recommendation"`
	ShouldUseAirPurifier          bool              `json:"should_use_air_purifier"`
	ShouldCloseWindows            bool              `json:"should_close_windows"`
	PollutantAdvice               map[string]string `json:"pollutant_advice,omitempty"`
}

// Secondary pollutant thresholds, independent of the AQI breakpoints.
// Concentrations above these get a pollutant-specific note.
var pollutantThresholds = map[string]float64{
	models.PollutantPM25: 35,
	models.PollutantNO2:  100,
	models.PollutantO3:   164,
	models.PollutantSO2:  75,
	models.PollutantCO:   12,
}

var pollutantNotes = map[string]string{
	models.PollutantPM25: "Fine particulate levels are elevated. An N95 mask filters PM2.5 effectively.",
	models.PollutantNO2:  "Nitrogen dioxide is high. Avoid busy roads and idling traffic.",
	models.PollutantO3:   "Ozone is high. Stay indoors during the afternoon when ozone peaks.",
	models.PollutantSO2:  "Sulphur dioxide is high. People with asthma should keep inhalers at hand.",
	models.PollutantCO:   "Carbon monoxide is elevated. Ensure indoor spaces are well ventilated.",
}

var generalRecs = map[models.Category][]string{
	models.CategoryGood: {
		"Air quality is excellent. Ideal for all outdoor activities.",
		"Keep windows open for fresh air.",
	},
	models.CategoryFair: {
		"Air quality is acceptable for most people.",
		"Ventilate your home regularly.",
	},
	models.CategoryModerate: {
		"Air quality is moderate. Reduce prolonged outdoor exposure.",
		"Keep windows closed during peak pollution hours.",
	},
	models.CategoryPoor: {
		"Air quality is poor. Everyone should reduce outdoor exposure.",
		"Keep windows closed and run an air purifier indoors.",
	},
	models.CategoryVeryPoor: {
		"Air quality is very poor. Avoid all outdoor activities.",
		"Seal windows and run air purifiers on high.",
	},
	models.CategoryHazardous: {
		"Health emergency: air quality is hazardous.",
		"Stay indoors at all times and minimize physical activity.",
	},
}

var sensitiveRecs = map[models.Category][]string{
	models.CategoryGood: {
		"No precautions needed.",
	},
	models.CategoryFair: {
		"People with respiratory conditions may experience minor irritation.",
	},
	models.CategoryModerate: {
		"Children, elderly, and people with lung or heart disease should limit outdoor activities.",
	},
	models.CategoryPoor: {
		"Sensitive groups must avoid outdoor activities.",
		"Use an N95 mask if going out is unavoidable.",
	},
	models.CategoryVeryPoor: {
		"Stay indoors with air purification running.",
		"Monitor symptoms closely and keep medication at hand.",
	},
	models.CategoryHazardous: {
		"Seek shelter immediately. Medical supervision recommended for respiratory patients.",
	},
}

var maskRecs = map[models.Category]string{
	models.CategoryGood:      "No mask needed.",
	models.CategoryFair:      "No mask needed for most people.",
	models.CategoryModerate:  "Mask recommended for sensitive groups outdoors.",
	models.CategoryPoor:      "N95 mask essential when outdoors.",
	models.CategoryVeryPoor:  "N95 or N99 mask mandatory if you must go out.",
	models.CategoryHazardous: "N99 mask and eye protection for any outdoor exposure.",
}

var exerciseRecs = map[models.Category]string{
	models.CategoryGood:      "Perfect for jogging, cycling, and outdoor sports.",
	models.CategoryFair:      "Outdoor exercise is fine; monitor how you feel.",
	models.CategoryModerate:  "Light exercise is okay; avoid intense outdoor workouts.",
	models.CategoryPoor:      "Exercise indoors only.",
	models.CategoryVeryPoor:  "Indoor exercise only, with good air filtration.",
	models.CategoryHazardous: "No exercise. Minimize all physical activity.",
}

// Advise maps an AQI value and a pollutant concentration map to health
// guidance. It is a pure function: no errors, unknown pollutant codes are
// ignored.
func Advise(aqi int, pollutants map[string]float64) Advisory {
	cat := models.CategoryForAQI(aqi)

	a := Advisory{
		Category:                      cat,
		GeneralRecommendations:        generalRecs[cat],
		SensitiveGroupRecommendations: sensitiveRecs[cat],
		MaskRecommendation:            maskRecs[cat],
		ExerciseRecommendation:        exerciseRecs[cat],
		ShouldUseAirPurifier:          aqi > 100,
		ShouldCloseWindows:            aqi > 150,
	}

	for code, conc := range pollutants {
		threshold, ok := pollutantThresholds[code]
		if !ok {
			continue
		}
		if conc > threshold {
			if a.PollutantAdvice == nil {
				a.PollutantAdvice = make(map[string]string)
			}
			a.PollutantAdvice[code] = pollutantNotes[code]
		}
	}

	return a
}
