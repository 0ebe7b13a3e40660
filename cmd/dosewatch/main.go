package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/Dosewatch/internal/api"
	"github.com/MikeSquared-Agency/Dosewatch/internal/assessment"
	"github.com/MikeSquared-Agency/Dosewatch/internal/assets"
	"github.com/MikeSquared-Agency/Dosewatch/internal/config"
	"github.com/MikeSquared-Agency/Dosewatch/internal/flux"
	"github.com/MikeSquared-Agency/Dosewatch/internal/hermes"
	"github.com/MikeSquared-Agency/Dosewatch/internal/logging"
	"github.com/MikeSquared-Agency/Dosewatch/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine, err := assessment.NewFromConfig(cfg)
	if err != nil {
		logger.Error("invalid calculation config", "error", err)
		os.Exit(1)
	}

	resolver, err := assets.NewResolver(cfg.Assets.Dir)
	if err != nil {
		logger.Error("failed to locate assets", "error", err)
		os.Exit(1)
	}
	logger.Info("serving images", "dir", resolver.ImagesRoot())

	// Database (optional)
	var db store.Store
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		db = pg
		logger.Info("connected to database")
	} else {
		db = store.NewMemoryStore()
		logger.Info("no database configured, keeping assessments in memory")
	}
	defer db.Close()

	// Hermes (optional)
	var hermesClient hermes.Client = hermes.Nop{}
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Flux feed
	var fetcher flux.Fetcher
	if cfg.Flux.Enabled {
		fetcher = flux.NewHTTPFetcher(cfg.Flux.URL, cfg.FluxTimeout(), cfg.Flux.Fallback, logger)
		logger.Info("flux feed enabled", "url", cfg.Flux.URL, "timeout", cfg.FluxTimeout())
	} else {
		fetcher = flux.Static{Value: cfg.Flux.Fallback}
		logger.Info("flux feed disabled, using static value", "flux", cfg.Flux.Fallback)
	}

	// API server
	router := api.NewRouter(api.Deps{
		Engine:            engine,
		Store:             db,
		Hermes:            hermesClient,
		Flux:              fetcher,
		Assets:            resolver,
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
		Logger:            logger,
	})
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
