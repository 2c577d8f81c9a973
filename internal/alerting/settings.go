package alerting

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/arnv-dev/go-aqi-alerts/internal/notify"
)

const (
	minAlertThreshold = 50
	maxAlertThreshold = 300
)

// Settings is the user's suppression policy. It is replaced wholesale on
// every change; callers build a new value (Clone then modify) instead of
// mutating fields on a shared one.
type Settings struct {
	MasterEnabled    bool                     `json:"master_enabled"`
	CategoryEnabled  map[notify.Category]bool `json:"category_enabled"`
	AlertThreshold   int                      `json:"alert_threshold"`
	QuietHours       []int                    `json:"quiet_hours,omitempty"`
	SoundEnabled     bool                     `json:"sound_enabled"`
	VibrationEnabled bool                     `json:"vibration_enabled"`
}

// DefaultSettings: alerting on, every category on except forecast,
// threshold 100, no quiet hours.
func DefaultSettings() Settings {
	enabled := make(map[notify.Category]bool, len(notify.Categories))
	for _, c := range notify.Categories {
		enabled[c] = c != notify.CategoryForecast
	}
	return Settings{
		MasterEnabled:    true,
		CategoryEnabled:  enabled,
		AlertThreshold:   100,
		SoundEnabled:     true,
		VibrationEnabled: true,
	}
}

// Clone deep-copies the settings so a modified copy never aliases the
// original's maps.
func (s Settings) Clone() Settings {
	out := s
	out.CategoryEnabled = make(map[notify.Category]bool, len(s.CategoryEnabled))
	for c, v := range s.CategoryEnabled {
		out.CategoryEnabled[c] = v
	}
	out.QuietHours = append([]int(nil), s.QuietHours...)
	return out
}

// Validate enforces the write-boundary bounds. The engine itself trusts
// whatever snapshot it is handed.
func (s Settings) Validate() error {
	if s.AlertThreshold < minAlertThreshold || s.AlertThreshold > maxAlertThreshold {
		return fmt.Errorf("alert threshold %d out of range [%d, %d]", s.AlertThreshold, minAlertThreshold, maxAlertThreshold)
	}
	for _, h := range s.QuietHours {
		if h < 0 || h > 23 {
			return fmt.Errorf("quiet hour %d out of range [0, 23]", h)
		}
	}
	return nil
}

func (s Settings) IsQuietHour(hour int) bool {
	return slices.Contains(s.QuietHours, hour)
}

// CategoryOn treats categories missing from the map as enabled, so settings
// persisted before a category existed do not silently drop it.
func (s Settings) CategoryOn(c notify.Category) bool {
	v, ok := s.CategoryEnabled[c]
	if !ok {
		return true
	}
	return v
}

// SettingsRepository is the slice of the persistence adapter the settings
// store needs.
type SettingsRepository interface {
	SaveSettings(ctx context.Context, s Settings) error
	LoadSettings(ctx context.Context) (Settings, error)
}

// SettingsStore owns the current settings value for a session. Load falls
// back to defaults when nothing was persisted; Save replaces the value
// in memory even when the durable write fails.
type SettingsStore struct {
	repo SettingsRepository

	mu  sync.RWMutex
	cur Settings
}

func NewSettingsStore(ctx context.Context, repo SettingsRepository) *SettingsStore {
	st := &SettingsStore{repo: repo, cur: DefaultSettings()}
	if repo == nil {
		return st
	}
	loaded, err := repo.LoadSettings(ctx)
	if err != nil {
		slog.Warn("settings load failed, using defaults", "error", err)
		return st
	}
	st.cur = loaded
	return st
}

// Current returns a snapshot of the settings.
func (st *SettingsStore) Current() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.cur.Clone()
}

// Save validates, replaces the current value, and persists it. A persistence
// failure is returned to the caller but the in-memory value still advances.
func (st *SettingsStore) Save(ctx context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	st.mu.Lock()
	st.cur = s.Clone()
	st.mu.Unlock()

	if st.repo == nil {
		return nil
	}
	if err := st.repo.SaveSettings(ctx, s); err != nil {
		return fmt.Errorf("persisting settings: %w", err)
	}
	return nil
}
