package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultCapacity bounds the memory store when none is configured.
const DefaultCapacity = 256

// MemoryStore is a thread-safe in-process LRU store. Capacity bounds
// the entry count with least-recently-used eviction; a non-zero TTL
// additionally expires entries lazily on access.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration

	// items maps key strings to list elements; order front is the most
	// recently used entry.
	items map[string]*list.Element
	order *list.List
}

type memoryEntry struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates a memory store. A non-positive capacity falls
// back to DefaultCapacity; ttl 0 disables expiry.
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get retrieves a cached payload and marks it most recently used.
func (s *MemoryStore) Get(_ context.Context, key Key) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key.String()]
	if !ok {
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	entry := elem.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.order.Remove(elem)
		delete(s.items, entry.key)
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	s.order.MoveToFront(elem)
	CacheHits.WithLabelValues("memory").Inc()
	return entry.data, nil
}

// Set stores a payload, evicting least-recently-used entries beyond
// capacity.
func (s *MemoryStore) Set(_ context.Context, key Key, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}

	keyStr := key.String()
	if elem, ok := s.items[keyStr]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.data = data
		entry.expiresAt = expiresAt
		s.order.MoveToFront(elem)
		return nil
	}

	elem := s.order.PushFront(&memoryEntry{
		key:       keyStr,
		data:      data,
		expiresAt: expiresAt,
	})
	s.items[keyStr] = elem

	for s.order.Len() > s.capacity {
		oldest := s.order.Back()
		if oldest == nil {
			break
		}
		s.order.Remove(oldest)
		delete(s.items, oldest.Value.(*memoryEntry).key)
		CacheEvictions.Inc()
	}

	return nil
}

// Len returns the current entry count.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}
