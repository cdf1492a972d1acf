package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/service"
)

type fakeObserver struct {
	mu       sync.Mutex
	messages []domain.StatusMessage
	failOn   int
	block    bool
	done     chan struct{}
}

func newFakeObserver() *fakeObserver {
	return &fakeObserver{done: make(chan struct{})}
}

func (o *fakeObserver) Push(ctx context.Context, msg domain.StatusMessage) error {
	if o.block {
		<-ctx.Done()
		return ctx.Err()
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
	if o.failOn > 0 && len(o.messages) >= o.failOn {
		return errors.New("broken pipe")
	}
	return nil
}

func (o *fakeObserver) Done() <-chan struct{} { return o.done }

func (o *fakeObserver) received() []domain.StatusMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]domain.StatusMessage(nil), o.messages...)
}

func serveAsync(ctx context.Context, b *service.StatusBroadcaster, obs service.StatusObserver) <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		b.Serve(ctx, obs)
	}()
	return finished
}

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestStatusBroadcaster_PushesSnapshotsPeriodically(t *testing.T) {
	registry := service.NewStatusRegistry()
	registry.Set("invoice-1", domain.StageExtracting)
	b := service.NewStatusBroadcaster(registry, service.BroadcasterConfig{Interval: 10 * time.Millisecond})

	obs := newFakeObserver()
	finished := serveAsync(context.Background(), b, obs)

	assert.Eventually(t, func() bool { return len(obs.received()) >= 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, b.ActiveCount())

	registry.Set("invoice-1", domain.StageCompleted)
	assert.Eventually(t, func() bool {
		msgs := obs.received()
		return msgs[len(msgs)-1].Documents["invoice-1"] == domain.StageCompleted
	}, time.Second, 5*time.Millisecond)

	close(obs.done)
	waitClosed(t, finished)
	assert.Equal(t, 0, b.ActiveCount())
	assert.Equal(t, domain.StageExtracting, obs.received()[0].Documents["invoice-1"])
}

func TestStatusBroadcaster_FailedPushDropsOnlyThatObserver(t *testing.T) {
	registry := service.NewStatusRegistry()
	b := service.NewStatusBroadcaster(registry, service.BroadcasterConfig{Interval: 10 * time.Millisecond})

	healthy := newFakeObserver()
	broken := newFakeObserver()
	broken.failOn = 2

	healthyDone := serveAsync(context.Background(), b, healthy)
	brokenDone := serveAsync(context.Background(), b, broken)

	waitClosed(t, brokenDone)
	assert.Len(t, broken.received(), 2)

	before := len(healthy.received())
	assert.Eventually(t, func() bool { return len(healthy.received()) > before+1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, b.ActiveCount())

	b.Shutdown()
	waitClosed(t, healthyDone)
}

func TestStatusBroadcaster_WriteTimeoutDropsSlowObserver(t *testing.T) {
	registry := service.NewStatusRegistry()
	b := service.NewStatusBroadcaster(registry, service.BroadcasterConfig{
		Interval:     time.Hour,
		WriteTimeout: 20 * time.Millisecond,
	})

	slow := newFakeObserver()
	slow.block = true

	waitClosed(t, serveAsync(context.Background(), b, slow))
	assert.Equal(t, 0, b.ActiveCount())
}

func TestStatusBroadcaster_StopsOnContextAndShutdown(t *testing.T) {
	registry := service.NewStatusRegistry()
	b := service.NewStatusBroadcaster(registry, service.BroadcasterConfig{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	byCtx := serveAsync(ctx, b, newFakeObserver())
	byShutdown := serveAsync(context.Background(), b, newFakeObserver())

	require.Eventually(t, func() bool { return b.ActiveCount() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	waitClosed(t, byCtx)

	b.Shutdown()
	b.Shutdown()
	waitClosed(t, byShutdown)
	assert.Equal(t, 0, b.ActiveCount())
}

func TestStatusBroadcaster_Snapshot(t *testing.T) {
	registry := service.NewStatusRegistry()
	registry.Set("a", domain.StageUploaded)
	registry.Set("b", domain.StageFailed)
	b := service.NewStatusBroadcaster(registry, service.BroadcasterConfig{})

	assert.Equal(t, map[string]domain.StageStatus{"a": domain.StageUploaded, "b": domain.StageFailed}, b.Snapshot().Documents)
}
