package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/arnv-dev/go-aqi-alerts/internal/alerting"
	"github.com/arnv-dev/go-aqi-alerts/internal/api"
	"github.com/arnv-dev/go-aqi-alerts/internal/config"
	"github.com/arnv-dev/go-aqi-alerts/internal/logging"
	"github.com/arnv-dev/go-aqi-alerts/internal/monitor"
	"github.com/arnv-dev/go-aqi-alerts/internal/notify"
	"github.com/arnv-dev/go-aqi-alerts/internal/repository"
	"github.com/arnv-dev/go-aqi-alerts/internal/source"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settings := alerting.NewSettingsStore(ctx, db)

	store := notify.NewStore()
	if history, err := db.LoadNotifications(ctx); err != nil {
		slog.Warn("notification history load failed, starting empty", "error", err)
	} else {
		store.Replace(history)
	}

	engine := alerting.NewEngine()
	if seen, err := db.LoadLastObserved(ctx); err != nil {
		slog.Warn("last observations load failed", "error", err)
	} else {
		for _, obs := range seen {
			engine.Seed(obs)
		}
	}

	var src source.Source
	client := source.NewClient(cfg.Source.URL)
	src = client

	var sampler api.SampleReporter
	if cfg.Source.MockFallback {
		fb := source.NewFallback(client)
		src = fb
		sampler = fb
	}

	broadcaster := notify.NewBroadcaster()

	mgr := monitor.NewManager(cfg, src, engine, settings, store, db, broadcaster)
	mgr.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(10, 20))

	handler := api.NewHandler(store, settings, engine, broadcaster, client, sampler)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	mgr.Stop()
	broadcaster.Close() // Close all streams gracefully

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
