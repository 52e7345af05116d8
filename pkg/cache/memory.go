package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is a process-local Cache and Locker. It backs tests and
// single-node deployments that run without Redis. There is no library in use
// here because expiry only needs to be checked lazily on read.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time // zero means no expiration
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]memoryItem)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		delete(m.items, key)
		return nil, false, nil
	}
	return item.value, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := memoryItem{value: value}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}
	m.items[key] = item
	return nil
}

func (m *MemoryCache) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func (m *MemoryCache) AcquireLock(_ context.Context, key, token string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if ok && (item.expiresAt.IsZero() || time.Now().Before(item.expiresAt)) {
		return false, nil
	}
	entry := memoryItem{value: []byte(token)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.items[key] = entry
	return true, nil
}

func (m *MemoryCache) ReleaseLock(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item, ok := m.items[key]; ok && string(item.value) == token {
		delete(m.items, key)
	}
	return nil
}
