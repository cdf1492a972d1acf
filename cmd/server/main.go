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

	"github.com/rs/zerolog/log"

	_ "docflow/docs"
	"docflow/internal/cache"
	"docflow/internal/capability/remote"
	"docflow/internal/config"
	"docflow/internal/handler"
	"docflow/internal/logging"
	"docflow/internal/port"
	"docflow/internal/prompts"
	"docflow/internal/repository/postgres"
	"docflow/internal/router"
	"docflow/internal/service"
	"docflow/internal/settings"
	s3storage "docflow/internal/storage/s3"
)

// @title Docflow API
// @version 1.0
// @description Uploads documents, runs them through digitization, classification, extraction and validation, and serves the persisted results.
// @BasePath /api
// @securityDefinitions.apikey APIKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	extractionRepo := postgres.NewExtractionRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Prompt bundles, cached in Redis when configured
	var promptLoader port.PromptLoader = prompts.NewFileLoader(cfg.Prompts.Dir)
	var redisClient *cache.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		promptLoader = prompts.NewCachedLoader(promptLoader, redisClient, cfg.Prompts.CacheTTL)
	} else {
		log.Info().Msg("redis not configured, prompt bundles are read from disk on every run")
	}

	// Remote document understanding capabilities
	if cfg.Remote.BaseURL == "" {
		log.Warn().Msg("remote.base_url is not set; pipeline runs and discovery will fail")
	}
	remoteClient := remote.NewClient(&cfg.Remote, remote.NewTokenSource(&cfg.Remote))
	caps := service.Capabilities{
		Digitizer:  remote.NewDigitizer(remoteClient, s3Client, cfg.S3.Bucket),
		Classifier: remote.NewClassifier(remoteClient),
		Extractor:  remote.NewExtractor(remoteClient),
		Validator:  remote.NewValidator(remoteClient),
	}

	// Pipeline
	registry := service.NewStatusRegistry()
	runner := service.NewPipelineRunner(caps, extractionRepo, promptLoader, registry, cfg.Pipeline.CallTimeout)
	dispatcher := service.NewTaskDispatcher(runner, registry, service.DispatcherConfig{
		Concurrency: cfg.Pipeline.Concurrency,
	})
	broadcaster := service.NewStatusBroadcaster(registry, service.BroadcasterConfig{
		Interval:     cfg.Pipeline.BroadcastInterval,
		WriteTimeout: cfg.Pipeline.BroadcastWriteTimeout,
	})

	// Initialize services
	settingsSvc := service.NewSettingsService(settings.NewFileStore(cfg.Settings.File))
	processSvc := service.NewProcessService(s3Client, &cfg.S3, registry, dispatcher, settingsSvc)
	discoverySvc := service.NewDiscoveryService(remote.NewDiscovery(remoteClient))
	dashboardSvc := service.NewDashboardService(extractionRepo, statsRepo)

	// Initialize handlers
	processH := handler.NewProcessHandler(processSvc)
	streamH := handler.NewStatusStreamHandler(broadcaster, cfg.CORS.AllowedOrigins)
	settingsH := handler.NewSettingsHandler(settingsSvc, discoverySvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	var cachePinger handler.CachePinger
	if redisClient != nil {
		cachePinger = redisClient
	}
	healthH := handler.NewHealthHandler(db, cachePinger)

	// Setup router
	r := router.Setup(processH, streamH, settingsH, dashboardH, healthH, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		APIKeyHash:     cfg.Server.APIKeyHash,
		EnableSwagger:  cfg.Server.Environment != "production",
	})

	srv := &http.Server{
		Addr:        cfg.Server.Port,
		Handler:     r,
		ReadTimeout: cfg.Server.ReadTimeout,
		// No WriteTimeout: status streams stay open indefinitely.
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Port).Int("concurrency", cfg.Pipeline.Concurrency).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	// Stop accepting requests, end status streams, then drain pipeline runs.
	httpCtx, cancelHTTP := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelHTTP()
	broadcaster.Shutdown()
	if err := srv.Shutdown(httpCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), cfg.Pipeline.ShutdownGrace)
	defer cancelDrain()
	if err := dispatcher.Shutdown(drainCtx); err != nil {
		log.Warn().Err(err).Int("running", dispatcher.Running()).Msg("pipeline runs did not finish within the shutdown grace period")
	}

	log.Info().Msg("server stopped")
	return nil
}
