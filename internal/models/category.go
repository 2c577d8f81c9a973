package models

// Category is the CPCB-style six-bucket AQI health category.
type Category string

const (
	CategoryGood      Category = "good"
	CategoryFair      Category = "fair"
	CategoryModerate  Category = "moderate"
	CategoryPoor      Category = "poor"
	CategoryVeryPoor  Category = "very_poor"
	CategoryHazardous Category = "hazardous"
)

// CategoryForAQI is the single breakpoint table in the codebase. Every
// component that needs a category derives it here; nothing re-implements
// the thresholds. Upper bounds are inclusive.
func CategoryForAQI(aqi int) Category {
	switch {
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategoryFair
	case aqi <= 150:
		return CategoryModerate
	case aqi <= 200:
		return CategoryPoor
	case aqi <= 300:
		return CategoryVeryPoor
	default:
		return CategoryHazardous
	}
}

func (c Category) String() string {
	return string(c)
}
