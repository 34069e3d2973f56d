// Package ratelimit throttles the sync trigger endpoints with a token bucket
// per client and rule.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket refilled continuously at rate tokens per second.
type bucket struct {
	capacity float64
	rate     float64
	tokens   float64
	last     time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		last:     now,
	}
}

// refill credits the tokens earned since the last call.
func (b *bucket) refill(now time.Time) {
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	}
	b.last = now
}

// take consumes one token if available.
func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// untilNext is how long until one more token is available.
func (b *bucket) untilNext() time.Duration {
	if b.tokens >= 1 || b.rate <= 0 {
		return 0
	}
	return time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
}

// untilFull is how long until the bucket is back to capacity.
func (b *bucket) untilFull() time.Duration {
	if b.rate <= 0 {
		return 0
	}
	return time.Duration((b.capacity - b.tokens) / b.rate * float64(time.Second))
}

// Info describes the limit state after a request was checked.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	Rules   []Rule
	// IdleTTL is how long an unused bucket is kept before cleanup drops it.
	IdleTTL         time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
}

type entry struct {
	bucket   *bucket
	lastSeen time.Time
}

// Limiter tracks one bucket per client and rule. Requests that match no
// rule are not limited.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry

	stopOnce sync.Once
	stop     chan struct{}
}

// NewLimiter creates a limiter. A nil config disables limiting.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{}
	}
	if config.IdleTTL == 0 {
		config.IdleTTL = time.Hour
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow checks whether clientID may call method path now, consuming a token
// if so.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	rule := MatchRule(path, method, l.config.Rules)
	if rule == nil || rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	key := clientID + " " + rule.Method + " " + rule.Path

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{bucket: newBucket(rule.capacity(), rule.refillRate(), now)}
		l.entries[key] = e
	}
	e.lastSeen = now

	allowed := e.bucket.take(now)
	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: int(e.bucket.tokens),
		ResetTime: now.Add(e.bucket.untilFull()),
	}
	if !allowed {
		info.RetryAfter = e.bucket.untilNext()
	}
	return allowed, info
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup drops buckets idle for longer than IdleTTL.
func (l *Limiter) cleanup() {
	cutoff := l.now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
