package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestClient creates a cache client connected to a miniredis instance
func setupTestClient(t *testing.T, ttl time.Duration) (*Client, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	err := mr.Start()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(&redis.Options{Addr: mr.Addr()}, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestNewClient(t *testing.T) {
	t.Run("creates client successfully", func(t *testing.T) {
		client, _ := setupTestClient(t, time.Hour)
		assert.NotNil(t, client)
	})

	t.Run("rejects non-positive TTL", func(t *testing.T) {
		_, err := NewClient(&redis.Options{Addr: "localhost:6379"}, 0)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "TTL must be positive")
	})
}

func TestPing(t *testing.T) {
	client, _ := setupTestClient(t, time.Hour)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestGetSet(t *testing.T) {
	client, _ := setupTestClient(t, time.Hour)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		payload := []byte("Task,Rating\nDraft email,4.0\n")
		err := client.Set(ctx, "SALT-NLP/WORKBank", "worker_data/domain_worker_desires.csv", payload)
		require.NoError(t, err)

		data, err := client.Get(ctx, "SALT-NLP/WORKBank", "worker_data/domain_worker_desires.csv")
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("miss returns not-found", func(t *testing.T) {
		_, err := client.Get(ctx, "SALT-NLP/WORKBank", "missing.csv")
		assert.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("keys are namespaced per repository and file", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "repo-a", "file.csv", []byte("a")))
		require.NoError(t, client.Set(ctx, "repo-b", "file.csv", []byte("b")))

		a, err := client.Get(ctx, "repo-a", "file.csv")
		require.NoError(t, err)
		b, err := client.Get(ctx, "repo-b", "file.csv")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestContains(t *testing.T) {
	client, _ := setupTestClient(t, time.Hour)
	ctx := context.Background()

	ok, err := client.Contains(ctx, "SALT-NLP/WORKBank", "file.csv")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, client.Set(ctx, "SALT-NLP/WORKBank", "file.csv", []byte("data")))

	ok, err = client.Contains(ctx, "SALT-NLP/WORKBank", "file.csv")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	client, mr := setupTestClient(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "SALT-NLP/WORKBank", "file.csv", []byte("data")))

	// Entry survives within the TTL window
	mr.FastForward(30 * time.Second)
	_, err := client.Get(ctx, "SALT-NLP/WORKBank", "file.csv")
	assert.NoError(t, err)

	// And expires after it
	mr.FastForward(31 * time.Second)
	_, err = client.Get(ctx, "SALT-NLP/WORKBank", "file.csv")
	assert.True(t, IsNotFound(err))
}

func TestDatasetKey(t *testing.T) {
	key := DatasetKey("SALT-NLP/WORKBank", "worker_data/domain_worker_desires.csv")
	assert.Equal(t, "taskatlas:dataset:SALT-NLP/WORKBank:worker_data/domain_worker_desires.csv", key)
}
