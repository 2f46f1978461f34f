package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"govidly/internal/pkg/cache"
)

func TestNoopClient_AlwaysMisses(t *testing.T) {
	var c cache.Client = cache.NoopClient{}
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "movie:1", "{}", time.Minute))

	_, err := c.Get(ctx, "movie:1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	n, err := c.IncrWindow(ctx, "rate-limit:127.0.0.1", time.Minute)
	assert.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, c.Delete(ctx, "movie:1", "genre:1"))
}
