// Package cache provides season-keyed memoization of encoded query
// results, with an in-process LRU backend and a redis backend.
//
// Each of the four season queries produces an identical result for
// identical inputs, and finalized seasons never change upstream, so
// entries need no invalidation. A TTL bounds how stale an in-progress
// season's entry can get.
//
// # Basic Usage
//
//	// In-process LRU (default backend)
//	store := cache.NewMemoryStore(256, time.Hour)
//
//	key := cache.Key{Operation: "points_progression", Season: 2023}
//
//	body, err := store.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// compute, encode, then:
//		_ = store.Set(ctx, key, body)
//	}
//
// # Shared Cache
//
// Deployments running several instances can share results through
// redis instead:
//
//	store := cache.NewRedisStore(redisClient, time.Hour)
//
// Both backends satisfy the Store interface consumed by the HTTP
// layer, which caches whole encoded response bodies around the pure
// query core.
//
// # Metrics
//
// The package exports prometheus metrics:
//
//   - f1_cache_hits_total{backend} - hits by backend
//   - f1_cache_misses_total - misses
//   - f1_cache_evictions_total - LRU evictions (memory backend)
//   - f1_cache_errors_total{operation} - backend errors
package cache
