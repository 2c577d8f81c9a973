package source

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/arnv-dev/go-aqi-alerts/internal/config"
	"github.com/arnv-dev/go-aqi-alerts/internal/models"
)

// Fallback wraps a Source and substitutes a synthetic observation whenever
// the wrapped source fails, so alerting keeps running in mock mode instead
// of surfacing an error. The engine downstream cannot tell sample data from
// real data; the Sampled flag is how the UI layer shows its "using sample
// data" indicator.
type Fallback struct {
	inner Source
	now   func() time.Time

	mu      sync.RWMutex
	sampled map[string]bool
}

func NewFallback(inner Source) *Fallback {
	return &Fallback{
		inner:   inner,
		now:     time.Now,
		sampled: make(map[string]bool),
	}
}

func (f *Fallback) Latest(ctx context.Context, loc config.Location) (*models.AqiObservation, error) {
	obs, err := f.inner.Latest(ctx, loc)
	if err == nil {
		f.setSampled(loc.Label, false)
		return obs, nil
	}

	slog.Warn("aqi source failed, substituting sample data", "location", loc.Label, "error", err)
	f.setSampled(loc.Label, true)
	return f.synthetic(loc), nil
}

// Sampled reports whether the most recent observation for a location came
// from the synthetic generator rather than the live feed.
func (f *Fallback) Sampled(locationLabel string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sampled[locationLabel]
}

func (f *Fallback) setSampled(locationLabel string, v bool) {
	f.mu.Lock()
	f.sampled[locationLabel] = v
	f.mu.Unlock()
}

// synthetic builds a deterministic sample observation seeded from the
// location label and the current hour, so repeated failures within the same
// hour do not fabricate spikes.
func (f *Fallback) synthetic(loc config.Location) *models.AqiObservation {
	now := f.now()

	h := fnv.New32a()
	h.Write([]byte(loc.Label))
	seed := int(h.Sum32() % 120) // 0..119 base offset per location

	// Diurnal shape: worst around 8am and 8pm, cleanest mid-afternoon.
	hour := now.Hour()
	diurnal := 0
	switch {
	case hour >= 6 && hour <= 10:
		diurnal = 40
	case hour >= 18 && hour <= 22:
		diurnal = 50
	case hour >= 12 && hour <= 16:
		diurnal = -10
	}

	aqi := 60 + seed + diurnal
	if aqi < 0 {
		aqi = 0
	}
	if aqi > 500 {
		aqi = 500
	}

	pollutants := map[string]float64{
		models.PollutantPM25: float64(aqi) * 0.45,
		models.PollutantPM10: float64(aqi) * 0.9,
		models.PollutantNO2:  float64(aqi) * 0.3,
		models.PollutantO3:   float64(aqi) * 0.25,
	}

	return models.NewObservation(aqi, pollutants, now.UTC(), loc.Label)
}
