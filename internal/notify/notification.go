package notify

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryWarning  Category = "warning"
	CategoryAlert    Category = "alert"
	CategoryInfo     Category = "info"
	CategorySuccess  Category = "success"
	CategoryForecast Category = "forecast"
	CategoryHealth   Category = "health"
)

// Categories lists every notification category, for settings iteration.
var Categories = []Category{
	CategoryWarning,
	CategoryAlert,
	CategoryInfo,
	CategorySuccess,
	CategoryForecast,
	CategoryHealth,
}

// Priority is totally ordered: Low < Medium < High < Critical.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

var priorityNames = map[Priority]string{
	PriorityLow:      "low",
	PriorityMedium:   "medium",
	PriorityHigh:     "high",
	PriorityCritical: "critical",
}

var priorityValues = map[string]Priority{
	"low":      PriorityLow,
	"medium":   PriorityMedium,
	"high":     PriorityHigh,
	"critical": PriorityCritical,
}

func (p Priority) String() string {
	return priorityNames[p]
}

func (p Priority) MarshalText() ([]byte, error) {
	return []byte(priorityNames[p]), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	// Unknown tags decode as low rather than failing the whole history load.
	*p = priorityValues[string(text)]
	return nil
}

// PriorityForAQI classifies alert priority from the triggering AQI value.
func PriorityForAQI(aqi int) Priority {
	switch {
	case aqi <= 100:
		return PriorityLow
	case aqi <= 150:
		return PriorityMedium
	case aqi <= 200:
		return PriorityHigh
	default:
		return PriorityCritical
	}
}

// Data is the fixed payload carried by AQI-triggered notifications.
type Data struct {
	AQI           int    `json:"aqi"`
	LocationLabel string `json:"location_label"`
}

type Notification struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Category   Category  `json:"category"`
	Priority   Priority  `json:"priority"`
	CreatedAt  time.Time `json:"created_at"`
	Data       Data      `json:"data"`
	IsRead     bool      `json:"is_read"`
	IsArchived bool      `json:"is_archived"`
}

// NewNotification stamps identity and creation time; everything else is
// supplied by the caller. External (non-AQI) producers use the same factory.
func NewNotification(title, message string, category Category, priority Priority, data Data) *Notification {
	return &Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Category:  category,
		Priority:  priority,
		CreatedAt: time.Now().UTC(),
		Data:      data,
	}
}
