package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	timestamp time.Time
	ttl       time.Duration
}

func (e memoryEntry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.timestamp) > e.ttl
}

// Memory is a size-bounded TTL cache. Expired entries are dropped by a
// periodic cleanup, which also evicts the oldest entries above maxSize.
type Memory struct {
	mu              sync.RWMutex
	entries         map[string]memoryEntry
	maxSize         int
	cleanupInterval time.Duration
	done            chan struct{}
	closeOnce       sync.Once
}

// NewMemory creates the cache and starts its cleanup goroutine.
func NewMemory(maxSize int, cleanupInterval time.Duration) *Memory {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	m := &Memory{
		entries:         make(map[string]memoryEntry),
		maxSize:         maxSize,
		cleanupInterval: cleanupInterval,
		done:            make(chan struct{}),
	}
	go m.periodicCleanup()
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, found := m.entries[key]
	if !found || entry.expired(time.Now()) {
		return nil, ErrMiss
	}
	return entry.value, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, timestamp: time.Now(), ttl: ttl}
	over := m.maxSize > 0 && len(m.entries) > m.maxSize
	m.mu.Unlock()

	if over {
		m.Cleanup()
	}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Cleanup removes expired entries and enforces the size limit.
func (m *Memory) Cleanup() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
		}
	}

	if m.maxSize <= 0 || len(m.entries) <= m.maxSize {
		return
	}

	type aged struct {
		key       string
		timestamp time.Time
	}
	entries := make([]aged, 0, len(m.entries))
	for key, entry := range m.entries {
		entries = append(entries, aged{key, entry.timestamp})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].timestamp.Before(entries[j].timestamp)
	})

	for i := 0; i < len(entries)-m.maxSize; i++ {
		delete(m.entries, entries[i].key)
	}
}

func (m *Memory) periodicCleanup() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Cleanup()
		case <-m.done:
			return
		}
	}
}

// Close stops the cleanup goroutine and drops all entries.
func (m *Memory) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
		m.mu.Lock()
		m.entries = make(map[string]memoryEntry)
		m.mu.Unlock()
	})
	return nil
}
