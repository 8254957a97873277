// Package ratelimit limits requests per key within a sliding window.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Config is a request budget: at most Limit requests per Window.
// A Limit of zero disables limiting.
type Config struct {
	Limit  int           `mapstructure:"limit" validate:"gte=0"`
	Window time.Duration `mapstructure:"window"`
}

type RateLimiter interface {
	// Allow records one request for key and reports whether it fits the budget.
	Allow(ctx context.Context, key string) (bool, error)
	// Remaining reports how many more requests key may make in the current window.
	Remaining(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// MemoryRateLimiter keeps request times in process memory.
type MemoryRateLimiter struct {
	config Config
	now    func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
}

func NewMemoryRateLimiter(config Config) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		config: config,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
}

// prune drops hits older than the window. Callers hold l.mu.
func (l *MemoryRateLimiter) prune(key string, now time.Time) []time.Time {
	hits := l.hits[key]
	cutoff := now.Add(-l.config.Window)
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	hits = hits[i:]
	l.hits[key] = hits
	return hits
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.config.Limit <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hits := l.prune(key, now)
	if len(hits) >= l.config.Limit {
		return false, nil
	}
	l.hits[key] = append(hits, now)
	return true, nil
}

func (l *MemoryRateLimiter) Remaining(_ context.Context, key string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	used := len(l.prune(key, l.now()))
	return int64(max(l.config.Limit-used, 0)), nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.hits, key)
	return nil
}
