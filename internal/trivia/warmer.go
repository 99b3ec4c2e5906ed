package trivia

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer periodically reloads the category map into the cache so readers
// rarely fall through to the store.
type CacheWarmer struct {
	resolver *CategoryResolver
	logger   zerolog.Logger
	interval time.Duration
}

func NewCacheWarmer(svc *Service, interval time.Duration, logger zerolog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheWarmer{
		resolver: svc.resolver,
		logger:   logger.With().Str("component", "category_cache_warmer").Logger(),
		interval: interval,
	}
}

// Run blocks until ctx is canceled.
func (w *CacheWarmer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *CacheWarmer) tick(ctx context.Context) {
	categories, err := w.resolver.Refresh(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("category refresh failed")
		return
	}
	w.logger.Debug().Int("categories", len(categories)).Msg("category cache refreshed")
}
