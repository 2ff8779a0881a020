package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates a test Redis client.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestRedisStore_GetSet(t *testing.T) {
	redisClient := setupTestRedis(t)
	ctx := context.Background()

	store := NewRedisStore(redisClient, time.Minute)
	key := Key{Operation: "driver_standings", Season: 2023}

	if _, err := store.Get(ctx, key); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get() on empty store error = %v, want ErrCacheMiss", err)
	}

	payload := []byte(`[{"position": "1"}]`)
	if err := store.Set(ctx, key, payload); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Get() = %s, want %s", got, payload)
	}

	// Entry lands under the deterministic key string.
	if err := redisClient.Get(ctx, key.String()).Err(); err != nil {
		t.Errorf("entry missing at %q: %v", key.String(), err)
	}
}

func TestRedisStore_TTL(t *testing.T) {
	redisClient := setupTestRedis(t)
	ctx := context.Background()

	store := NewRedisStore(redisClient, 50*time.Millisecond)
	key := Key{Operation: "pilot_stats", Season: 2024}

	if err := store.Set(ctx, key, []byte("{}")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	ttl, err := redisClient.TTL(ctx, key.String()).Result()
	if err != nil {
		t.Fatalf("TTL() error = %v", err)
	}
	if ttl <= 0 || ttl > 50*time.Millisecond {
		t.Errorf("TTL = %v, want (0, 50ms]", ttl)
	}

	time.Sleep(80 * time.Millisecond)

	if _, err := store.Get(ctx, key); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() after expiry error = %v, want ErrCacheMiss", err)
	}
}

func TestNewRedisStore_NilClient(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewRedisStore(nil) expected panic")
		}
	}()
	NewRedisStore(nil, time.Minute)
}
