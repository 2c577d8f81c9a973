package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/arnv-dev/go-aqi-alerts/internal/alerting"
	"github.com/arnv-dev/go-aqi-alerts/internal/config"
	"github.com/arnv-dev/go-aqi-alerts/internal/models"
	"github.com/arnv-dev/go-aqi-alerts/internal/notify"
	"github.com/arnv-dev/go-aqi-alerts/internal/repository"
	"github.com/arnv-dev/go-aqi-alerts/internal/source"
)

// Manager polls the AQI source for each configured location and pushes every
// new observation through the decision engine. Each location gets its own
// poller and its own single-worker queue, so evaluations for one location
// never interleave while different locations proceed independently.
type Manager struct {
	cfg         *config.Config
	src         source.Source
	engine      *alerting.Engine
	settings    *alerting.SettingsStore
	store       *notify.Store
	repo        repository.Store
	broadcaster *notify.Broadcaster

	queues map[string]*serialQueue
	wg     sync.WaitGroup
}

func NewManager(
	cfg *config.Config,
	src source.Source,
	engine *alerting.Engine,
	settings *alerting.SettingsStore,
	store *notify.Store,
	repo repository.Store,
	broadcaster *notify.Broadcaster,
) *Manager {
	return &Manager{
		cfg:         cfg,
		src:         src,
		engine:      engine,
		settings:    settings,
		store:       store,
		repo:        repo,
		broadcaster: broadcaster,
		queues:      make(map[string]*serialQueue),
	}
}

func (m *Manager) Start(ctx context.Context) {
	for _, loc := range m.cfg.Locations {
		q := newSerialQueue(8, m.process)
		q.Start(ctx)
		m.queues[loc.Label] = q

		m.wg.Add(1)
		go m.runPoller(ctx, loc, m.cfg.Source.PollInterval)
	}
}

func (m *Manager) runPoller(ctx context.Context, loc config.Location, interval time.Duration) {
	defer m.wg.Done()
	slog.Info("starting poller", "location", loc.Label, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.poll(ctx, loc)

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller shutting down", "location", loc.Label)
			return
		case <-ticker.C:
			m.poll(ctx, loc)
		}
	}
}

func (m *Manager) poll(ctx context.Context, loc config.Location) {
	slog.Debug("polling", "location", loc.Label)

	obs, err := m.src.Latest(ctx, loc)
	if err != nil {
		slog.Error("poll failed", "location", loc.Label, "error", err)
		return
	}

	m.queues[loc.Label].Submit(obs)
}

// process is the serialized per-location evaluation step: one observation
// in, at most one notification out. Persistence failures are logged and
// swallowed; the in-memory state already advanced and stays authoritative.
func (m *Manager) process(ctx context.Context, obs *models.AqiObservation) {
	settings := m.settings.Current()
	n := m.engine.Evaluate(obs, settings)

	if m.repo != nil {
		if err := m.repo.SaveLastObserved(ctx, obs); err != nil {
			slog.Error("error saving last observation", "location", obs.LocationLabel, "error", err)
		}
	}

	if n == nil {
		return
	}

	m.store.Insert(n)
	if m.broadcaster != nil {
		m.broadcaster.Broadcast(n)
	}

	if m.repo != nil {
		if err := m.repo.SaveNotifications(ctx, m.store.All()); err != nil {
			slog.Error("error saving notifications", "error", err)
		}
	}

	slog.Info("raised notification",
		"id", n.ID,
		"category", n.Category,
		"priority", n.Priority.String(),
		"aqi", obs.Value,
		"location", obs.LocationLabel,
	)
}

func (m *Manager) Stop() {
	m.wg.Wait()
	for _, q := range m.queues {
		q.Stop()
	}
	slog.Info("monitor stopped")
}
