package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterTTL is how long an idle key keeps its bucket.
const limiterTTL = 30 * time.Minute

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// MemoryRateLimiter is a per-key token bucket held in process. A bucket
// holds requests tokens and refills fully over window.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func NewMemoryRateLimiter(requests int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   requests,
		now:     time.Now,
	}
}

func (m *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.entries[key] = e
	}
	e.lastUse = now

	return e.limiter.AllowN(now, 1), nil
}

// Cleanup drops buckets idle for longer than [limiterTTL].
func (m *MemoryRateLimiter) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, e := range m.entries {
		if now.Sub(e.lastUse) > limiterTTL {
			delete(m.entries, key)
		}
	}
}

// Run calls Cleanup every interval until ctx is done.
func (m *MemoryRateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup()
		}
	}
}
