package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MuradEyvazli/vizyon-haber/internal/model"
)

type entry struct {
	articles  []model.Article
	expiresAt time.Time
}

// Memory is the default in-process Store. Expiry is checked on every read;
// Sweep removes dead entries in bulk to bound memory.
type Memory struct {
	mu     sync.RWMutex
	items  map[string]entry
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]entry)}
}

func (m *Memory) Get(_ context.Context, key string) ([]model.Article, bool) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		if ok {
			m.mu.Lock()
			delete(m.items, key)
			m.mu.Unlock()
		}
		m.misses.Add(1)
		return nil, false
	}
	m.hits.Add(1)
	return e.articles, true
}

func (m *Memory) Set(_ context.Context, key string, articles []model.Article, ttl time.Duration) {
	m.mu.Lock()
	m.items[key] = entry{articles: articles, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
}

func (m *Memory) Has(_ context.Context, key string) bool {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	return ok && time.Now().Before(e.expiresAt)
}

func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
}

func (m *Memory) Keys(_ context.Context) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := time.Now()
	keys := make([]string, 0, len(m.items))
	for k, e := range m.items {
		if now.Before(e.expiresAt) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (m *Memory) Stats() Stats {
	return Stats{Hits: m.hits.Load(), Misses: m.misses.Load()}
}

// Sweep removes expired entries. Called periodically by the cache sweeper
// worker; correctness does not depend on it.
func (m *Memory) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for k, e := range m.items {
		if now.After(e.expiresAt) {
			delete(m.items, k)
		}
	}
}
