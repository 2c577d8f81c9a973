package alerting

import (
	"testing"
	"time"

	"github.com/arnv-dev/go-aqi-alerts/internal/models"
	"github.com/arnv-dev/go-aqi-alerts/internal/notify"
)

func testEngine(hour int) *Engine {
	e := NewEngine()
	e.now = func() time.Time {
		return time.Date(2025, 11, 14, hour, 30, 0, 0, time.Local)
	}
	return e
}

func obs(value int, location string) *models.AqiObservation {
	return models.NewObservation(value, nil, time.Now().UTC(), location)
}

func TestEvaluate_MasterDisabledAlwaysSuppresses(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings()
	s.MasterEnabled = false

	for _, value := range []int{0, 101, 250, 500} {
		if n := e.Evaluate(obs(value, "Delhi"), s); n != nil {
			t.Errorf("value %d: expected suppression with master disabled, got %+v", value, n)
		}
	}
}

func TestEvaluate_SuppressionStillAdvancesBaseline(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings()
	s.MasterEnabled = false

	e.Evaluate(obs(180, "Delhi"), s)
	if last := e.LastObserved("Delhi"); last == nil || last.Value != 180 {
		t.Fatalf("expected baseline to advance to 180 despite suppression, got %+v", last)
	}

	// Re-enabled: 182 is no new crossing and no spike relative to 180, so
	// the suppressed observation really did become the baseline.
	s.MasterEnabled = true
	if n := e.Evaluate(obs(182, "Delhi"), s); n != nil {
		t.Errorf("expected no trigger after baseline advanced under suppression, got %+v", n)
	}
}

func TestEvaluate_QuietHoursSuppressButAdvance(t *testing.T) {
	e := testEngine(2)
	s := DefaultSettings()
	s.QuietHours = []int{1, 2, 3}

	if n := e.Evaluate(obs(300, "Delhi"), s); n != nil {
		t.Fatalf("expected quiet-hour suppression, got %+v", n)
	}
	if last := e.LastObserved("Delhi"); last == nil || last.Value != 300 {
		t.Fatalf("expected baseline to advance during quiet hours, got %+v", last)
	}
}

func TestEvaluate_FirstObservation(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings()

	n := e.Evaluate(obs(180, "Delhi"), s)
	if n == nil {
		t.Fatal("expected first observation above threshold to trigger")
	}
	if n.Category != notify.CategoryAlert {
		t.Errorf("expected alert category, got %s", n.Category)
	}
	if n.Priority != notify.PriorityHigh {
		t.Errorf("expected high priority for aqi 180, got %s", n.Priority)
	}
	if n.Data.AQI != 180 || n.Data.LocationLabel != "Delhi" {
		t.Errorf("unexpected payload: %+v", n.Data)
	}

	// Small drift while already above threshold: no crossing, no spike.
	if n := e.Evaluate(obs(182, "Delhi"), s); n != nil {
		t.Errorf("expected no trigger for 180 -> 182, got %+v", n)
	}
}

func TestEvaluate_FirstObservationBelowThreshold(t *testing.T) {
	e := testEngine(12)

	if n := e.Evaluate(obs(90, "Delhi"), DefaultSettings()); n != nil {
		t.Errorf("expected no trigger for first observation below threshold, got %+v", n)
	}
	if last := e.LastObserved("Delhi"); last == nil || last.Value != 90 {
		t.Errorf("expected baseline 90, got %+v", last)
	}
}

func TestEvaluate_Spike(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings()
	s.AlertThreshold = 200

	e.Evaluate(obs(100, "Delhi"), s)
	n := e.Evaluate(obs(130, "Delhi"), s)
	if n == nil {
		t.Fatal("expected spike trigger for 100 -> 130 (delta 30 > 20)")
	}
	if n.Category != notify.CategoryWarning {
		t.Errorf("expected warning category for a spike, got %s", n.Category)
	}
	if n.Priority != notify.PriorityMedium {
		t.Errorf("expected medium priority for aqi 130, got %s", n.Priority)
	}
}

func TestEvaluate_SpikeDeltaIsExclusive(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings()
	s.AlertThreshold = 300

	e.Evaluate(obs(110, "Delhi"), s)
	if n := e.Evaluate(obs(130, "Delhi"), s); n != nil {
		t.Errorf("delta of exactly 20 should not spike, got %+v", n)
	}
}

func TestEvaluate_ThresholdCrossing(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings() // threshold 100

	e.Evaluate(obs(90, "Delhi"), s)
	n := e.Evaluate(obs(110, "Delhi"), s)
	if n == nil {
		t.Fatal("expected trigger for upward crossing 90 -> 110")
	}
	if n.Category != notify.CategoryAlert {
		t.Errorf("expected alert category, got %s", n.Category)
	}

	// Already above threshold: 110 -> 130 is no new crossing and the spike
	// delta is exactly 20, not above it.
	if n := e.Evaluate(obs(130, "Delhi"), s); n != nil {
		t.Errorf("expected no trigger for 110 -> 130, got %+v", n)
	}
}

func TestEvaluate_Improvement(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings()

	e.Evaluate(obs(180, "Delhi"), s)
	n := e.Evaluate(obs(140, "Delhi"), s)
	if n == nil {
		t.Fatal("expected improvement trigger for 180 -> 140 (drop 40 > 30)")
	}
	if n.Category != notify.CategorySuccess {
		t.Errorf("expected success category, got %s", n.Category)
	}
	if n.Priority != notify.PriorityLow {
		t.Errorf("expected low priority for improvement, got %s", n.Priority)
	}
}

func TestEvaluate_ImprovementDeltaIsExclusive(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings()
	s.AlertThreshold = 300

	e.Evaluate(obs(180, "Delhi"), s)
	if n := e.Evaluate(obs(150, "Delhi"), s); n != nil {
		t.Errorf("drop of exactly 30 should not trigger, got %+v", n)
	}
}

func TestEvaluate_CategoryToggleSuppresses(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings()
	s.CategoryEnabled[notify.CategoryWarning] = false
	s.AlertThreshold = 300

	e.Evaluate(obs(100, "Delhi"), s)
	if n := e.Evaluate(obs(160, "Delhi"), s); n != nil {
		t.Fatalf("expected spike suppressed by warning toggle, got %+v", n)
	}

	// The toggle is checked last, so flipping it back makes the same
	// condition fire on the next spike.
	s.CategoryEnabled[notify.CategoryWarning] = true
	if n := e.Evaluate(obs(200, "Delhi"), s); n == nil {
		t.Error("expected spike once warning category re-enabled")
	}
}

func TestEvaluate_PriorityClassification(t *testing.T) {
	tests := []struct {
		aqi  int
		want notify.Priority
	}{
		{100, notify.PriorityLow},
		{101, notify.PriorityMedium},
		{150, notify.PriorityMedium},
		{151, notify.PriorityHigh},
		{200, notify.PriorityHigh},
		{201, notify.PriorityCritical},
		{450, notify.PriorityCritical},
	}

	for _, tt := range tests {
		if got := notify.PriorityForAQI(tt.aqi); got != tt.want {
			t.Errorf("aqi %d: expected priority %s, got %s", tt.aqi, tt.want, got)
		}
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	s := DefaultSettings()

	// Two engines fed identical inputs agree on the decision and content.
	a := testEngine(12)
	b := testEngine(12)

	a.Evaluate(obs(90, "Delhi"), s)
	b.Evaluate(obs(90, "Delhi"), s)

	na := a.Evaluate(obs(110, "Delhi"), s)
	nb := b.Evaluate(obs(110, "Delhi"), s)

	if na == nil || nb == nil {
		t.Fatal("expected both engines to trigger")
	}
	if na.Category != nb.Category || na.Priority != nb.Priority || na.Title != nb.Title || na.Message != nb.Message {
		t.Errorf("evaluations diverged: %+v vs %+v", na, nb)
	}
}

func TestEvaluate_LocationsIndependent(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings()

	e.Evaluate(obs(90, "Delhi"), s)

	// A different location has no baseline; 110 is its first observation.
	n := e.Evaluate(obs(110, "Mumbai"), s)
	if n == nil {
		t.Fatal("expected first-observation trigger for Mumbai")
	}
	if n.Data.LocationLabel != "Mumbai" {
		t.Errorf("expected Mumbai payload, got %+v", n.Data)
	}
}

func TestReset_DropsBaseline(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings()

	e.Evaluate(obs(90, "Delhi"), s)
	e.Reset("Delhi")

	if last := e.LastObserved("Delhi"); last != nil {
		t.Fatalf("expected no baseline after reset, got %+v", last)
	}

	// After reset the next reading is a first observation again.
	if n := e.Evaluate(obs(110, "Delhi"), s); n == nil {
		t.Error("expected first-observation trigger after reset")
	}
}

func TestSeed_SuppressesFirstObservation(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings()

	e.Seed(obs(110, "Delhi"))

	// 112 relative to the seeded 110: already above threshold, no spike.
	if n := e.Evaluate(obs(112, "Delhi"), s); n != nil {
		t.Errorf("expected seeded baseline to suppress first-observation trigger, got %+v", n)
	}
}

func TestEvaluate_SpikeBeatsCrossing(t *testing.T) {
	e := testEngine(12)
	s := DefaultSettings() // threshold 100

	// 90 -> 140 is both a spike and a crossing; spike wins the order.
	e.Evaluate(obs(90, "Delhi"), s)
	n := e.Evaluate(obs(140, "Delhi"), s)
	if n == nil {
		t.Fatal("expected trigger")
	}
	if n.Category != notify.CategoryWarning {
		t.Errorf("expected spike (warning) to win over crossing, got %s", n.Category)
	}
}
