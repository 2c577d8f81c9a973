package repository

import (
	"context"
	"errors"

	"github.com/arnv-dev/go-aqi-alerts/internal/alerting"
	"github.com/arnv-dev/go-aqi-alerts/internal/models"
	"github.com/arnv-dev/go-aqi-alerts/internal/notify"
)

// ErrNotFound is returned by loads when nothing was ever saved.
var ErrNotFound = errors.New("not found")

// Store is the persistence adapter: a durable save/load pair for settings,
// notification history, and the last retained observation per location.
// Failures are best-effort from the caller's point of view; in-memory state
// stays authoritative for the running session.
type Store interface {
	SaveSettings(ctx context.Context, s alerting.Settings) error
	LoadSettings(ctx context.Context) (alerting.Settings, error)

	SaveNotifications(ctx context.Context, items []notify.Notification) error
	LoadNotifications(ctx context.Context) ([]*notify.Notification, error)

	SaveLastObserved(ctx context.Context, obs *models.AqiObservation) error
	LoadLastObserved(ctx context.Context) ([]*models.AqiObservation, error)
}
