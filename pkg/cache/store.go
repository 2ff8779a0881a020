package cache

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCacheMiss indicates the requested key was not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// Key identifies one cached query result.
type Key struct {
	// Operation is the query name (e.g. "driver_standings").
	Operation string

	// Season is the championship year.
	Season int
}

// String generates a deterministic cache key string.
// Format: f1:<operation>:<season>
//
// Example:
//
//	f1:points_progression:2023
func (k Key) String() string {
	return fmt.Sprintf("f1:%s:%d", k.Operation, k.Season)
}

// Store is a bounded memoization backend for encoded query results.
// Entries are transparent (same inputs, same outputs) and never
// invalidated: finalized seasons are immutable upstream, and staleness
// for an in-progress season is bounded by the backend's TTL.
type Store interface {
	// Get returns the cached payload, or ErrCacheMiss.
	Get(ctx context.Context, key Key) ([]byte, error)

	// Set stores a payload, evicting or expiring older entries as the
	// backend requires.
	Set(ctx context.Context, key Key, data []byte) error
}
