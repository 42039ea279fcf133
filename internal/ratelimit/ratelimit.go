// Package ratelimit provides per-key token bucket limiting for inbound
// write protection. The API keys buckets by client IP; buckets that sit
// idle are evicted so the table tracks active clients rather than every
// address ever seen.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Eviction cadence. A bucket idle for evictAfter has fully refilled and
// carries no state worth keeping.
const (
	sweepEvery = time.Minute
	evictAfter = 10 * time.Minute
)

// KeyedRateLimiter hands each key an independent token bucket.
type KeyedRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int

	done     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a limiter allowing rps sustained requests per second per
// key with the given burst. A background sweeper reclaims idle buckets
// until Stop is called.
func New(rps float64, burst int) *KeyedRateLimiter {
	l := &KeyedRateLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow reports whether a request under the key may proceed now. A key
// not seen before (or evicted since) starts with a full bucket.
func (l *KeyedRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = time.Now()
	l.mu.Unlock()

	return b.limiter.Allow()
}

// Len returns the number of keys currently tracked.
func (l *KeyedRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop ends the background sweeper. Safe to call more than once.
func (l *KeyedRateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *KeyedRateLimiter) sweep() {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-evictAfter))
		case <-l.done:
			return
		}
	}
}

// evictIdle drops buckets not seen since the cutoff.
func (l *KeyedRateLimiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}
