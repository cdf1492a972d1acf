package prompts

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"docflow/internal/cache"
	"docflow/internal/domain"
	"docflow/internal/port"
)

// CachedLoader serves bundles from a cache, falling back to the wrapped
// loader on a miss. Cache failures never fail a load.
type CachedLoader struct {
	next  port.PromptLoader
	cache port.Cache
	ttl   time.Duration
}

// NewCachedLoader wraps next with c.
func NewCachedLoader(next port.PromptLoader, c port.Cache, ttl time.Duration) *CachedLoader {
	return &CachedLoader{next: next, cache: c, ttl: ttl}
}

func (l *CachedLoader) Load(ctx context.Context, name string) (domain.Prompts, error) {
	key := "prompts:" + name

	data, err := l.cache.Get(ctx, key)
	if err == nil {
		return domain.Prompts(data), nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn().Err(err).Str("bundle", name).Msg("cachedLoader.Load: cache read failed")
	}

	prompts, err := l.next.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(ctx, key, prompts, l.ttl); err != nil {
		log.Warn().Err(err).Str("bundle", name).Msg("cachedLoader.Load: cache write failed")
	}
	return prompts, nil
}
