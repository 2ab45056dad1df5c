// Package testutils holds fixtures and store setup shared by tests.
package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// DefaultTestRedisURL points at database 15 so tests never touch real data
const DefaultTestRedisURL = "redis://localhost:6379/15"

// RedisClient connects to TEST_REDIS_URL (or DefaultTestRedisURL), flushes the
// database before and after the test, and skips the test when Redis is down.
func RedisClient(tb testing.TB) redis.UniversalClient {
	tb.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		url = DefaultTestRedisURL
	}

	opts, err := redis.ParseURL(url)
	require.NoError(tb, err, "invalid TEST_REDIS_URL")

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		tb.Skipf("Redis not available for testing: %v", err)
	}

	require.NoError(tb, client.FlushDB(ctx).Err(), "failed to flush test Redis database")

	tb.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}
