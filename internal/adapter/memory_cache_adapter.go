package adapter

import (
	"context"
	"sync"
	"time"

	"question-bank/internal/domain"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCacheAdapter is a process-local domain.Cache used when Redis is not
// configured. Expired entries are dropped lazily on read.
type MemoryCacheAdapter struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCacheAdapter() *MemoryCacheAdapter {
	return &MemoryCacheAdapter{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryCacheAdapter) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return "", domain.ErrCacheMiss
	}
	return e.value, nil
}

func (m *MemoryCacheAdapter) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	e := memoryEntry{value: value}
	if expiration > 0 {
		e.expiresAt = m.now().Add(expiration)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheAdapter) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheAdapter) Ping(context.Context) error { return nil }
