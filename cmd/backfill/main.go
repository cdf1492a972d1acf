// Command backfill runs the pipeline for uploaded documents that have no
// extraction records yet, using the saved processing settings.
// Usage: go run ./cmd/backfill [-dry-run]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"docflow/internal/capability/remote"
	"docflow/internal/config"
	"docflow/internal/domain"
	"docflow/internal/logging"
	"docflow/internal/prompts"
	"docflow/internal/repository/postgres"
	"docflow/internal/service"
	"docflow/internal/settings"
	s3storage "docflow/internal/storage/s3"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "list documents that would be processed without running them")
	flag.Parse()

	if err := run(*dryRun); err != nil {
		log.Fatal().Err(err).Msg("backfill failed")
	}
}

func run(dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.Setup(cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("initializing S3 client: %w", err)
	}

	extractionRepo := postgres.NewExtractionRepo(db)
	remoteClient := remote.NewClient(&cfg.Remote, remote.NewTokenSource(&cfg.Remote))
	caps := service.Capabilities{
		Digitizer:  remote.NewDigitizer(remoteClient, s3Client, cfg.S3.Bucket),
		Classifier: remote.NewClassifier(remoteClient),
		Extractor:  remote.NewExtractor(remoteClient),
		Validator:  remote.NewValidator(remoteClient),
	}

	registry := service.NewStatusRegistry()
	runner := service.NewPipelineRunner(caps, extractionRepo, prompts.NewFileLoader(cfg.Prompts.Dir), registry, cfg.Pipeline.CallTimeout)
	dispatcher := service.NewTaskDispatcher(runner, registry, service.DispatcherConfig{Concurrency: cfg.Pipeline.Concurrency})
	settingsSvc := service.NewSettingsService(settings.NewFileStore(cfg.Settings.File))
	processSvc := service.NewProcessService(s3Client, &cfg.S3, registry, dispatcher, settingsSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files, err := processSvc.ListFiles(ctx)
	if err != nil {
		return err
	}

	var pending []string
	for _, f := range files {
		_, err := extractionRepo.ListByDocument(ctx, f.DocumentID)
		switch {
		case errors.Is(err, domain.ErrDocumentNotFound):
			pending = append(pending, f.Filename)
		case err != nil:
			return fmt.Errorf("checking %s: %w", f.Filename, err)
		}
	}

	log.Info().Int("uploaded", len(files)).Int("pending", len(pending)).Msg("backfill: scan complete")
	if len(pending) == 0 {
		return nil
	}
	if dryRun {
		for _, name := range pending {
			fmt.Fprintln(os.Stdout, name)
		}
		return nil
	}

	if _, err := processSvc.ProcessBatch(ctx, pending); err != nil {
		return err
	}

	// Shutdown blocks until every run finishes or the process is interrupted.
	if err := dispatcher.Shutdown(ctx); err != nil {
		return fmt.Errorf("waiting for pipeline runs: %w", err)
	}

	completed, failed := 0, 0
	for _, status := range registry.SnapshotAll() {
		switch status {
		case domain.StageCompleted:
			completed++
		case domain.StageFailed:
			failed++
		}
	}
	log.Info().Int("completed", completed).Int("failed", failed).Msg("backfill: complete")
	return nil
}
