package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"docflow/internal/domain"
)

// StatusObserver is a connected consumer of status snapshots.
type StatusObserver interface {
	// Push delivers one snapshot. It must honor ctx's deadline.
	Push(ctx context.Context, msg domain.StatusMessage) error
	// Done is closed once the observer has disconnected.
	Done() <-chan struct{}
}

// BroadcasterConfig holds settings for the status broadcaster.
type BroadcasterConfig struct {
	Interval     time.Duration
	WriteTimeout time.Duration
}

// StatusBroadcaster periodically pushes registry snapshots to every connected
// observer. Each observer is served by its own loop; a push that fails or
// exceeds the write timeout drops that observer only.
type StatusBroadcaster struct {
	registry     *StatusRegistry
	interval     time.Duration
	writeTimeout time.Duration

	mu     sync.Mutex
	nextID uint64
	active map[uint64]StatusObserver

	stopOnce sync.Once
	stop     chan struct{}
}

// NewStatusBroadcaster creates a new StatusBroadcaster.
func NewStatusBroadcaster(registry *StatusRegistry, cfg BroadcasterConfig) *StatusBroadcaster {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &StatusBroadcaster{
		registry:     registry,
		interval:     interval,
		writeTimeout: cfg.WriteTimeout,
		active:       make(map[uint64]StatusObserver),
		stop:         make(chan struct{}),
	}
}

// Serve pushes a snapshot immediately and then once per interval until the
// observer disconnects, a push fails, ctx is canceled or Shutdown is called.
// It blocks for the lifetime of the observer and removes it from the active
// set on return.
func (b *StatusBroadcaster) Serve(ctx context.Context, obs StatusObserver) {
	id := b.register(obs)
	defer b.unregister(id)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		if err := b.push(ctx, obs); err != nil {
			log.Info().Err(err).Uint64("observer", id).Msg("statusBroadcaster.Serve: push failed, dropping observer")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-b.stop:
			return
		case <-obs.Done():
			log.Debug().Uint64("observer", id).Msg("statusBroadcaster.Serve: observer disconnected")
			return
		case <-ticker.C:
		}
	}
}

// Shutdown ends every active Serve loop. It is safe to call more than once.
func (b *StatusBroadcaster) Shutdown() {
	b.stopOnce.Do(func() { close(b.stop) })
}

// Snapshot returns the current status message for all known documents.
func (b *StatusBroadcaster) Snapshot() domain.StatusMessage {
	return domain.StatusMessage{Documents: b.registry.SnapshotAll()}
}

// ActiveCount returns the number of observers currently being served.
func (b *StatusBroadcaster) ActiveCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.active)
}

func (b *StatusBroadcaster) push(ctx context.Context, obs StatusObserver) error {
	pushCtx := ctx
	if b.writeTimeout > 0 {
		var cancel context.CancelFunc
		pushCtx, cancel = context.WithTimeout(ctx, b.writeTimeout)
		defer cancel()
	}
	return obs.Push(pushCtx, b.Snapshot())
}

func (b *StatusBroadcaster) register(obs StatusObserver) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.active[b.nextID] = obs
	log.Debug().Uint64("observer", b.nextID).Int("active", len(b.active)).Msg("statusBroadcaster.register: observer connected")
	return b.nextID
}

func (b *StatusBroadcaster) unregister(id uint64) {
	b.mu.Lock()
	delete(b.active, id)
	remaining := len(b.active)
	b.mu.Unlock()
	log.Debug().Uint64("observer", id).Int("active", remaining).Msg("statusBroadcaster.unregister: observer removed")
}
