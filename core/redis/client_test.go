package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("NotConfigured", func(t *testing.T) {
		_, err := Options(Config{})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("InvalidURL", func(t *testing.T) {
		_, err := Options(Config{URL: "http://localhost"})
		assert.Error(t, err)
	})

	t.Run("Overrides", func(t *testing.T) {
		opts, err := Options(Config{
			URL:          "redis://:secret@cache.local:6380/2",
			PoolSize:     4,
			MinIdleConns: 1,
			DialTimeout:  time.Second,
			ReadTimeout:  2 * time.Second,
		})
		require.NoError(t, err)

		assert.Equal(t, "cache.local:6380", opts.Addr)
		assert.Equal(t, "secret", opts.Password)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 4, opts.PoolSize)
		assert.Equal(t, 1, opts.MinIdleConns)
		assert.Equal(t, time.Second, opts.DialTimeout)
		assert.Equal(t, 2*time.Second, opts.ReadTimeout)
	})
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := Connect(ctx, Config{URL: "redis://127.0.0.1:1/0", DialTimeout: 200 * time.Millisecond})
	assert.Error(t, err)
	assert.Nil(t, client)
}
