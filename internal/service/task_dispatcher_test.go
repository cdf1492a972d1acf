package service_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/service"
)

// fakeRunner records runs and blocks each one until release is closed.
type fakeRunner struct {
	registry *service.StatusRegistry
	release  chan struct{}

	mu      sync.Mutex
	started []string
	cfgs    []*domain.ProcessingConfig

	current atomic.Int32
	peak    atomic.Int32
}

func newFakeRunner(registry *service.StatusRegistry) *fakeRunner {
	return &fakeRunner{registry: registry, release: make(chan struct{})}
}

func (f *fakeRunner) Run(ctx context.Context, doc domain.Document, cfg *domain.ProcessingConfig) {
	n := f.current.Add(1)
	defer f.current.Add(-1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	f.mu.Lock()
	f.started = append(f.started, doc.ID)
	f.cfgs = append(f.cfgs, cfg)
	f.mu.Unlock()

	f.registry.Set(doc.ID, domain.StageDigitizing)
	select {
	case <-f.release:
		f.registry.Set(doc.ID, domain.StageCompleted)
	case <-ctx.Done():
		f.registry.Set(doc.ID, domain.StageFailed)
	}
}

func (f *fakeRunner) startedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.started)
}

func docs(n int) []domain.Document {
	out := make([]domain.Document, n)
	for i := range out {
		name := fmt.Sprintf("doc-%d.pdf", i)
		out[i] = domain.NewDocument(name, "uploads/"+name)
	}
	return out
}

func TestTaskDispatcher_SubmitBatchReturnsImmediately(t *testing.T) {
	registry := service.NewStatusRegistry()
	runner := newFakeRunner(registry)
	d := service.NewTaskDispatcher(runner, registry, service.DispatcherConfig{})

	ids, err := d.SubmitBatch(docs(3), &domain.ProcessingConfig{})
	require.NoError(t, err)
	assert.Equal(t, []string{"doc-0", "doc-1", "doc-2"}, ids)

	for _, id := range ids {
		_, ok := registry.Get(id)
		assert.True(t, ok, id)
	}

	assert.Eventually(t, func() bool { return runner.startedCount() == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, d.Running())

	close(runner.release)
	require.NoError(t, d.Shutdown(context.Background()))

	for _, id := range ids {
		status, _ := registry.Get(id)
		assert.Equal(t, domain.StageCompleted, status)
	}
	assert.Equal(t, 0, d.Running())
}

func TestTaskDispatcher_ConcurrencyBound(t *testing.T) {
	registry := service.NewStatusRegistry()
	runner := newFakeRunner(registry)
	d := service.NewTaskDispatcher(runner, registry, service.DispatcherConfig{Concurrency: 2})

	ids, err := d.SubmitBatch(docs(6), &domain.ProcessingConfig{})
	require.NoError(t, err)
	require.Len(t, ids, 6)

	assert.Eventually(t, func() bool { return runner.startedCount() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 2, runner.startedCount())

	queued := 0
	for _, id := range ids {
		if status, _ := registry.Get(id); status == domain.StageUploaded {
			queued++
		}
	}
	assert.Equal(t, 4, queued)

	close(runner.release)
	require.NoError(t, d.Shutdown(context.Background()))
	assert.Equal(t, 6, runner.startedCount())
	assert.LessOrEqual(t, runner.peak.Load(), int32(2))
}

func TestTaskDispatcher_ConfigSnapshotPerBatch(t *testing.T) {
	registry := service.NewStatusRegistry()
	runner := newFakeRunner(registry)
	close(runner.release)
	d := service.NewTaskDispatcher(runner, registry, service.DispatcherConfig{})

	first := &domain.ProcessingConfig{Project: domain.ProjectSettings{ID: "proj-a"}}
	second := &domain.ProcessingConfig{Project: domain.ProjectSettings{ID: "proj-b"}}

	_, err := d.SubmitBatch(docs(1), first)
	require.NoError(t, err)
	_, err = d.SubmitBatch(docs(1), second)
	require.NoError(t, err)
	require.NoError(t, d.Shutdown(context.Background()))

	runner.mu.Lock()
	defer runner.mu.Unlock()
	assert.ElementsMatch(t, []*domain.ProcessingConfig{first, second}, runner.cfgs)
}

func TestTaskDispatcher_SubmitAfterShutdown(t *testing.T) {
	registry := service.NewStatusRegistry()
	d := service.NewTaskDispatcher(newFakeRunner(registry), registry, service.DispatcherConfig{})
	require.NoError(t, d.Shutdown(context.Background()))

	ids, err := d.SubmitBatch(docs(1), &domain.ProcessingConfig{})
	assert.ErrorIs(t, err, domain.ErrDispatcherClosed)
	assert.Nil(t, ids)
	assert.Equal(t, 0, registry.Len())
}

func TestTaskDispatcher_ShutdownGraceExpires(t *testing.T) {
	registry := service.NewStatusRegistry()
	runner := newFakeRunner(registry)
	d := service.NewTaskDispatcher(runner, registry, service.DispatcherConfig{Concurrency: 1})

	_, err := d.SubmitBatch(docs(2), &domain.ProcessingConfig{})
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return runner.startedCount() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = d.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Canceled runs end Failed: the running one via its context, the queued one before starting.
	assert.Eventually(t, func() bool {
		for _, id := range []string{"doc-0", "doc-1"} {
			if status, _ := registry.Get(id); status != domain.StageFailed {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
}
