package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/sports-manager/internal/config"
	"github.com/mauv0809/sports-manager/internal/database"
	"github.com/mauv0809/sports-manager/internal/health"
	server "github.com/mauv0809/sports-manager/internal/http"
	"github.com/mauv0809/sports-manager/internal/metrics"
	"github.com/mauv0809/sports-manager/internal/notifier"
	"github.com/mauv0809/sports-manager/internal/notifier/slack"
	"github.com/mauv0809/sports-manager/internal/pubsub"
	"github.com/mauv0809/sports-manager/internal/store"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DB, cfg.Turso)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	leagueStore := store.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	clock := clockwork.NewRealClock()

	var n notifier.Notifier
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		n = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("Slack is not configured, notifications are disabled")
	}

	var ps pubsub.PubSubClient
	if cfg.ProjectID != "" {
		client, teardown, err := pubsub.New(context.Background(), cfg.ProjectID, metricsSvc)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer teardown()
		ps = client
	} else {
		log.Warn("GCP_PROJECT is not set, results are notified in-process")
	}

	checker, err := health.New(leagueStore, metricsSvc, clock, cfg.HealthCron)
	if err != nil {
		log.Fatalf("Invalid HEALTH_CRON %q: %s", cfg.HealthCron, err)
	}
	checker.Start()
	defer checker.Stop()

	s := server.NewServer(cfg, leagueStore, metricsSvc, metricsHandler, clock, n, ps, checker)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
