package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stayfinder/internal/config"
	"github.com/kailas-cloud/stayfinder/internal/domain"
	logpkg "github.com/kailas-cloud/stayfinder/internal/logger"
	"github.com/kailas-cloud/stayfinder/internal/metrics"
	"github.com/kailas-cloud/stayfinder/internal/repository/backend"
	landmarkrepo "github.com/kailas-cloud/stayfinder/internal/repository/landmark"
	chiTransport "github.com/kailas-cloud/stayfinder/internal/transport/chi"
	discoveryuc "github.com/kailas-cloud/stayfinder/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/stayfinder/internal/usecase/health"
	"github.com/kailas-cloud/stayfinder/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting stayfinder API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Landmarks load before the store so a broken dataset fails fast.
	landmarks, err := landmarkrepo.LoadIndex(cfg.Landmarks.File)
	if err != nil {
		logger.Fatal("Failed to load landmarks", zap.String("file", cfg.Landmarks.File), zap.Error(err))
	}
	if landmarks.Len() == 0 {
		logger.Warn("No landmarks loaded, proximity search will return landmark_not_found")
	}
	logger.Info("Landmarks loaded", zap.Int("count", landmarks.Len()))

	ctx := context.Background()
	store, err := backend.Open(ctx, backend.Config{
		Driver:           cfg.Database.Driver,
		Addrs:            cfg.Database.Addrs,
		Password:         cfg.Database.Password,
		URI:              cfg.Database.URI,
		Database:         cfg.Database.Database,
		KeyPrefix:        cfg.Storage.KeyPrefix,
		ReadinessTimeout: time.Duration(cfg.Database.ReadinessTimeout) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to open listing store", zap.Error(err))
	}
	defer store.Close()
	logger.Info("Connected to database")

	// Register discovery metrics explicitly (no init())
	metrics.RegisterDiscoveryMetrics()

	discoverySvc := discoveryuc.New(store.Listings, landmarks, domain.SearchConfig{
		DefaultRadiusKm: cfg.Search.DefaultRadiusKm,
		StoreTimeoutMs:  cfg.Search.StoreTimeoutMs,
	}).WithRecorder(metrics.Recorder{})
	healthSvc := healthuc.New(store, landmarks)

	server := chiTransport.NewServer(discoverySvc, healthSvc, logger)
	handler := server.Router(chiTransport.RouterOptions{
		APIKeys:     cfg.Auth.APIKeys,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
