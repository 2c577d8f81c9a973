package alerting

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/arnv-dev/go-aqi-alerts/internal/advisory"
	"github.com/arnv-dev/go-aqi-alerts/internal/models"
	"github.com/arnv-dev/go-aqi-alerts/internal/notify"
)

const (
	// spikeDelta is the single-step AQI increase that always alerts,
	// threshold or not.
	spikeDelta = 20
	// improvementDelta is the single-step drop that raises a success note.
	improvementDelta = 30
)

type trigger int

const (
	triggerNone trigger = iota
	triggerFirstObservation
	triggerSpike
	triggerThresholdCrossing
	triggerImprovement
)

// Engine decides whether an AQI update should surface a notification. The
// only state it keeps is the last retained observation per location label.
// Calls for the same location must be serialized by the caller; the map
// lock below only keeps different locations from corrupting each other.
type Engine struct {
	mu   sync.Mutex
	last map[string]*models.AqiObservation
	now  func() time.Time
}

func NewEngine() *Engine {
	return &Engine{
		last: make(map[string]*models.AqiObservation),
		now:  time.Now,
	}
}

// Seed installs a persisted last observation for a location, so a restart
// does not re-fire the first-observation trigger.
func (e *Engine) Seed(obs *models.AqiObservation) {
	if obs == nil {
		return
	}
	e.mu.Lock()
	e.last[obs.LocationLabel] = obs
	e.mu.Unlock()
}

// Reset drops the retained observation when a location stops being
// monitored. Observations are not comparable across locations.
func (e *Engine) Reset(locationLabel string) {
	e.mu.Lock()
	delete(e.last, locationLabel)
	e.mu.Unlock()
}

// LastObserved returns the retained observation for a location, or nil.
func (e *Engine) LastObserved(locationLabel string) *models.AqiObservation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last[locationLabel]
}

// Evaluate compares the new observation against the retained one under the
// given settings snapshot and returns a notification when one should be
// raised, nil otherwise. The retained observation always advances to the
// new one, even when the result is suppressed, so quiet hours never leave a
// stale baseline behind. At most one notification is raised per call.
func (e *Engine) Evaluate(obs *models.AqiObservation, settings Settings) *notify.Notification {
	e.mu.Lock()
	prev := e.last[obs.LocationLabel]
	e.last[obs.LocationLabel] = obs
	e.mu.Unlock()

	if !settings.MasterEnabled || settings.IsQuietHour(e.now().Hour()) {
		return nil
	}

	trig := classify(prev, obs, settings.AlertThreshold)
	if trig == triggerNone {
		return nil
	}

	category := categoryFor(trig)
	priority := notify.PriorityLow
	if trig != triggerImprovement {
		priority = notify.PriorityForAQI(obs.Value)
	}

	// Category toggles come last, after priority is computed, so a later
	// evaluation with the toggle flipped back is reproducible.
	if !settings.CategoryOn(category) {
		return nil
	}

	return notify.NewNotification(
		title(trig, obs),
		message(trig, prev, obs),
		category,
		priority,
		notify.Data{AQI: obs.Value, LocationLabel: obs.LocationLabel},
	)
}

// classify applies the trigger conditions in priority order; first match
// wins.
func classify(prev, obs *models.AqiObservation, threshold int) trigger {
	if prev == nil {
		if obs.Value > threshold {
			return triggerFirstObservation
		}
		return triggerNone
	}
	if obs.Value-prev.Value > spikeDelta {
		return triggerSpike
	}
	if prev.Value <= threshold && obs.Value > threshold {
		return triggerThresholdCrossing
	}
	if prev.Value-obs.Value > improvementDelta {
		return triggerImprovement
	}
	return triggerNone
}

func categoryFor(trig trigger) notify.Category {
	switch trig {
	case triggerSpike:
		return notify.CategoryWarning
	case triggerImprovement:
		return notify.CategorySuccess
	default:
		return notify.CategoryAlert
	}
}

func title(trig trigger, obs *models.AqiObservation) string {
	switch trig {
	case triggerSpike:
		return fmt.Sprintf("AQI spike in %s", obs.LocationLabel)
	case triggerImprovement:
		return fmt.Sprintf("Air quality improving in %s", obs.LocationLabel)
	default:
		return fmt.Sprintf("Air quality alert for %s", obs.LocationLabel)
	}
}

func message(trig trigger, prev, obs *models.AqiObservation) string {
	adv := advisory.Advise(obs.Value, obs.Pollutants)

	var b strings.Builder
	switch trig {
	case triggerSpike:
		fmt.Fprintf(&b, "AQI jumped from %d to %d (%s). ", prev.Value, obs.Value, categoryLabel(obs.Category))
	case triggerImprovement:
		fmt.Fprintf(&b, "AQI dropped from %d to %d (%s). ", prev.Value, obs.Value, categoryLabel(obs.Category))
	default:
		fmt.Fprintf(&b, "AQI is %d (%s). ", obs.Value, categoryLabel(obs.Category))
	}

	if len(adv.GeneralRecommendations) > 0 {
		b.WriteString(adv.GeneralRecommendations[0])
	}
	if trig != triggerImprovement && adv.MaskRecommendation != "" {
		b.WriteString(" ")
		b.WriteString(adv.MaskRecommendation)
	}
	return b.String()
}

func categoryLabel(c models.Category) string {
	return strings.ReplaceAll(string(c), "_", " ")
}
