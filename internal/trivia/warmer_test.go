package trivia

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheWarmerRefreshesUntilCanceled(t *testing.T) {
	repo := newStubCategoryRepo()
	cache := &memoryCache{}
	svc := NewService(nil, repo, ServiceOptions{Cache: cache})
	warmer := NewCacheWarmer(svc, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- warmer.Run(ctx) }()

	require.Eventually(t, func() bool { return cache.hits() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("warmer did not stop")
	}
	stored, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sports", stored[6])
}

func TestCacheWarmerSurvivesStoreErrors(t *testing.T) {
	repo := &stubCategoryRepo{err: errors.New("boom")}
	cache := &memoryCache{}
	warmer := NewCacheWarmer(NewService(nil, repo, ServiceOptions{Cache: cache}), time.Hour, zerolog.Nop())

	warmer.tick(context.Background())
	assert.Equal(t, 1, repo.calls)
	assert.Zero(t, cache.setHits)
}
