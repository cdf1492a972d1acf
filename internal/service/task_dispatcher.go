package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"docflow/internal/domain"
)

// DocumentRunner executes the pipeline for one document. Implementations
// must not return until the run has reached a terminal status.
type DocumentRunner interface {
	Run(ctx context.Context, doc domain.Document, cfg *domain.ProcessingConfig)
}

// DispatcherConfig holds settings for the task dispatcher.
type DispatcherConfig struct {
	// Concurrency bounds concurrently running pipelines; 0 means unbounded.
	Concurrency int
}

// TaskDispatcher launches one independent pipeline run per submitted
// document, gated by a semaphore when a concurrency bound is configured.
type TaskDispatcher struct {
	runner   DocumentRunner
	registry *StatusRegistry
	sem      chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	running atomic.Int32
}

// NewTaskDispatcher creates a new TaskDispatcher.
func NewTaskDispatcher(runner DocumentRunner, registry *StatusRegistry, cfg DispatcherConfig) *TaskDispatcher {
	// Runs get a context independent of any request so they outlive the
	// submission call; Shutdown cancels it only after the grace period.
	ctx, cancel := context.WithCancel(context.Background())
	d := &TaskDispatcher{
		runner:   runner,
		registry: registry,
		ctx:      ctx,
		cancel:   cancel,
	}
	if cfg.Concurrency > 0 {
		d.sem = make(chan struct{}, cfg.Concurrency)
	}
	return d
}

// SubmitBatch marks every document Uploaded, starts its run in the
// background and returns the accepted ids without waiting. Submitting a
// document whose previous run is still in flight is not guarded against.
func (d *TaskDispatcher) SubmitBatch(docs []domain.Document, cfg *domain.ProcessingConfig) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, domain.ErrDispatcherClosed
	}

	ids := make([]string, 0, len(docs))
	for i := range docs {
		doc := docs[i] // copy for goroutine
		d.registry.Set(doc.ID, domain.StageUploaded)
		ids = append(ids, doc.ID)

		d.wg.Add(1)
		go d.execute(doc, cfg)
	}

	log.Info().Int("documents", len(ids)).Int("concurrency", cap(d.sem)).Msg("taskDispatcher.SubmitBatch: batch accepted")
	return ids, nil
}

func (d *TaskDispatcher) execute(doc domain.Document, cfg *domain.ProcessingConfig) {
	defer d.wg.Done()

	if d.sem != nil {
		select {
		case d.sem <- struct{}{}: // acquire
		case <-d.ctx.Done():
			log.Warn().Str("document_id", doc.ID).Msg("taskDispatcher.execute: dispatcher stopped before run could start")
			d.registry.Set(doc.ID, domain.StageFailed)
			return
		}
		defer func() { <-d.sem }() // release
	}

	d.running.Add(1)
	defer d.running.Add(-1)

	log.Debug().Str("document_id", doc.ID).Msg("taskDispatcher.execute: dispatching document")
	d.runner.Run(d.ctx, doc, cfg)
}

// Running returns the number of pipelines currently executing.
func (d *TaskDispatcher) Running() int {
	return int(d.running.Load())
}

// Shutdown stops accepting batches and waits for in-flight and queued runs.
// If ctx ends first, outstanding runs are canceled and ctx's error returned.
func (d *TaskDispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	log.Info().Int("running", d.Running()).Msg("taskDispatcher.Shutdown: waiting for in-flight pipelines")

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		log.Info().Msg("taskDispatcher.Shutdown: shutdown complete")
		return nil
	case <-ctx.Done():
		d.cancel()
		log.Warn().Msg("taskDispatcher.Shutdown: grace period expired, canceling outstanding pipelines")
		return ctx.Err()
	}
}
