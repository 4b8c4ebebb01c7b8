package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/kingsley-judewin/the-sentiment-oracle/internal/domain"
)

// sourceCacheEntry holds the last successful result for one source.
// Created on the first fetch attempt, overwritten on every success,
// kept for the process lifetime.
type sourceCacheEntry struct {
	posts     []domain.Post
	lastFetch time.Time
	fetched   bool
}

// StreamManager gates source adapters behind a per-source cooldown and caches
// each source's last successful result so the pipeline always has data to
// work with, even during cooldown windows or adapter outages.
type StreamManager struct {
	mu       sync.Mutex
	cooldown time.Duration
	clock    clockwork.Clock
	cache    map[string]*sourceCacheEntry
}

func NewStreamManager(cooldown time.Duration, clock clockwork.Clock) *StreamManager {
	return &StreamManager{
		cooldown: cooldown,
		clock:    clock,
		cache:    make(map[string]*sourceCacheEntry),
	}
}

// Fetch invokes the source if its cooldown has elapsed, otherwise serves the
// cached result. fresh reports whether the returned posts came from a live
// fetch this call. A non-nil err means the adapter failed this attempt and
// the returned posts are cached (possibly empty) fallback data; the cache and
// its timestamp are left untouched so the next call retries immediately.
func (m *StreamManager) Fetch(ctx context.Context, source domain.Source) (posts []domain.Post, fresh bool, err error) {
	name := source.Name()

	m.mu.Lock()
	entry, ok := m.cache[name]
	if !ok {
		entry = &sourceCacheEntry{}
		m.cache[name] = entry
	}
	due := !entry.fetched || m.clock.Since(entry.lastFetch) >= m.cooldown
	cached := entry.posts
	m.mu.Unlock()

	if !due {
		slog.Debug("Source on cooldown, serving cache", "source", name, "cached_posts", len(cached))
		return cached, false, nil
	}

	result, fetchErr := source.Fetch(ctx)
	if fetchErr != nil {
		slog.Warn("Source fetch failed, serving cache", "source", name, "error", fetchErr)
		return cached, false, fetchErr
	}

	m.mu.Lock()
	entry.posts = result
	entry.lastFetch = m.clock.Now()
	entry.fetched = true
	m.mu.Unlock()

	slog.Info("Fresh fetch", "source", name, "posts", len(result))
	return result, true, nil
}

// Cached returns the cached posts for a source, or nil if none.
func (m *StreamManager) Cached(name string) []domain.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.cache[name]; ok {
		return entry.posts
	}
	return nil
}
