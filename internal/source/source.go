package source

import (
	"context"
	"errors"

	"github.com/arnv-dev/go-aqi-alerts/internal/config"
	"github.com/arnv-dev/go-aqi-alerts/internal/models"
)

// ErrUnavailable wraps any failure to reach or decode the upstream feed.
var ErrUnavailable = errors.New("aqi source unavailable")

// Source supplies the latest observation for a monitored location.
type Source interface {
	Latest(ctx context.Context, loc config.Location) (*models.AqiObservation, error)
}
