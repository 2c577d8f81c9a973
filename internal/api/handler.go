package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arnv-dev/go-aqi-alerts/internal/alerting"
	"github.com/arnv-dev/go-aqi-alerts/internal/models"
	"github.com/arnv-dev/go-aqi-alerts/internal/notify"
	"github.com/arnv-dev/go-aqi-alerts/internal/stations"
)

// StationLister is the slice of the source client the nearest-station
// endpoint needs.
type StationLister interface {
	Stations(ctx context.Context) ([]models.Station, error)
}

// SampleReporter tells the UI whether a location is currently running on
// sample data.
type SampleReporter interface {
	Sampled(locationLabel string) bool
}

type Handler struct {
	store       *notify.Store
	settings    *alerting.SettingsStore
	engine      *alerting.Engine
	broadcaster *notify.Broadcaster
	lister      StationLister
	sampler     SampleReporter
}

func NewHandler(
	store *notify.Store,
	settings *alerting.SettingsStore,
	engine *alerting.Engine,
	broadcaster *notify.Broadcaster,
	lister StationLister,
	sampler SampleReporter,
) *Handler {
	return &Handler{
		store:       store,
		settings:    settings,
		engine:      engine,
		broadcaster: broadcaster,
		lister:      lister,
		sampler:     sampler,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	r.GET("/api/notifications", h.getNotifications)
	r.POST("/api/notifications/read-all", h.markAllRead)
	r.POST("/api/notifications/:id/read", h.markRead)
	r.POST("/api/notifications/:id/archive", h.archive)
	r.DELETE("/api/notifications/:id", h.deleteNotification)

	r.GET("/api/settings", h.getSettings)
	r.PUT("/api/settings", h.putSettings)

	r.GET("/api/aqi/current", h.getCurrentAQI)
	r.GET("/api/stations/nearest", h.getNearestStation)

	r.GET("/api/stream", h.stream)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getNotifications(c *gin.Context) {
	var items []notify.Notification

	switch {
	case c.Query("critical") == "1":
		items = h.store.Critical()
	case c.Query("unread") == "1":
		items = h.store.Unread()
	case c.Query("category") != "":
		items = h.store.ByCategory(notify.Category(c.Query("category")))
	default:
		items = h.store.All()
	}

	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim < len(items) {
			items = items[:lim]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"unread_count":  h.store.UnreadCount(),
	})
}

func (h *Handler) markRead(c *gin.Context) {
	h.store.MarkRead(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) markAllRead(c *gin.Context) {
	h.store.MarkAllRead()
	c.Status(http.StatusNoContent)
}

func (h *Handler) archive(c *gin.Context) {
	h.store.Archive(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteNotification(c *gin.Context) {
	h.store.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Current())
}

// putSettings replaces the settings wholesale. Bounds are enforced here, at
// the write boundary; a failed durable save is logged but not surfaced.
func (h *Handler) putSettings(c *gin.Context) {
	var s alerting.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
		return
	}
	if err := s.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settings.Save(c.Request.Context(), s); err != nil {
		slog.Error("settings save failed", "error", err)
	}

	c.JSON(http.StatusOK, h.settings.Current())
}

func (h *Handler) getCurrentAQI(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location query parameter required"})
		return
	}

	obs := h.engine.LastObserved(location)
	if obs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no observation yet for location"})
		return
	}

	sampled := false
	if h.sampler != nil {
		sampled = h.sampler.Sampled(location)
	}

	c.JSON(http.StatusOK, gin.H{
		"observation": obs,
		"sample":      sampled,
	})
}

func (h *Handler) getNearestStation(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon query parameters required"})
		return
	}

	if h.lister == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "station feed not configured"})
		return
	}

	list, err := h.lister.Stations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch stations"})
		return
	}

	st, ok := stations.Nearest(list, lat, lon)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no stations available"})
		return
	}

	c.JSON(http.StatusOK, st)
}
