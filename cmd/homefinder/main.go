package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/homefinder/internal/config"
	dbRedis "github.com/kailas-cloud/homefinder/internal/db/redis"
	logpkg "github.com/kailas-cloud/homefinder/internal/logger"
	"github.com/kailas-cloud/homefinder/internal/metrics"
	listingrepo "github.com/kailas-cloud/homefinder/internal/repository/listing"
	sectionrepo "github.com/kailas-cloud/homefinder/internal/repository/section"
	chiTransport "github.com/kailas-cloud/homefinder/internal/transport/chi"
	healthuc "github.com/kailas-cloud/homefinder/internal/usecase/health"
	listinguc "github.com/kailas-cloud/homefinder/internal/usecase/listing"
	searchuc "github.com/kailas-cloud/homefinder/internal/usecase/search"
	sectionuc "github.com/kailas-cloud/homefinder/internal/usecase/section"
	"github.com/kailas-cloud/homefinder/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting homefinder API server",
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Redis and Valkey speak the same protocol and JSON commands; one rueidis store serves both.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterSearchMetrics()

	listingRepo := listingrepo.New(store, cfg.Storage.KeyPrefix)
	sectionRepo := sectionrepo.New(store, cfg.Storage.KeyPrefix)

	listingSvc := listinguc.New(listingRepo).
		WithPagination(cfg.Admin.DefaultPageSize, cfg.Admin.MaxPageSize).
		WithMaxBatchSize(cfg.Admin.MaxBatchSize)
	sectionSvc := sectionuc.New(sectionRepo, listingRepo)
	searchSvc := searchuc.New(listingRepo)
	healthSvc := healthuc.New(store, listingRepo)

	server := chiTransport.NewServer(listingSvc, sectionSvc, searchSvc, healthSvc, logger).
		WithLimits(chiTransport.Limits{
			DefaultLimit: cfg.Search.DefaultLimit,
			MaxLimit:     cfg.Search.MaxLimit,
			SuggestLimit: cfg.Search.SuggestLimit,
		}).
		WithAPIKeys(cfg.Auth.APIKeys)

	r := chi.NewRouter()
	r.Use(chiTransport.Recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEvent(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
