package api

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Client bucket retention
const (
	limiterIdle     = 10 * time.Minute
	limiterSweep    = time.Minute
	limiterCapacity = 4096
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client address
// Buckets unused for longer than the idle window are evicted
type IPRateLimiter struct {
	ips      map[string]*clientLimiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
	idle     time.Duration
	capacity int
	now      func() time.Time
}

// NewIPRateLimiter creates a limiter allowing r events per second with burst b per address
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:      make(map[string]*clientLimiter),
		r:        r,
		b:        b,
		idle:     limiterIdle,
		capacity: limiterCapacity,
		now:      time.Now,
	}
}

// GetLimiter returns the bucket for ip, creating it on first use
// A full table is swept before a new address is admitted
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, exists := l.ips[ip]
	if !exists {
		if len(l.ips) >= l.capacity {
			l.evictLocked(now)
			if len(l.ips) >= l.capacity {
				l.evictOldestLocked()
			}
		}
		entry = &clientLimiter{limiter: rate.NewLimiter(l.r, l.b)}
		l.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Evict drops buckets idle for longer than the idle window and returns how many went
func (l *IPRateLimiter) Evict() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.evictLocked(l.now())
}

// Len is the number of tracked addresses
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ips)
}

// Sweep evicts idle buckets every interval until ctx ends
func (l *IPRateLimiter) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Evict()
		}
	}
}

func (l *IPRateLimiter) evictLocked(now time.Time) int {
	n := 0
	for ip, entry := range l.ips {
		if now.Sub(entry.lastSeen) > l.idle {
			delete(l.ips, ip)
			n++
		}
	}
	return n
}

func (l *IPRateLimiter) evictOldestLocked() {
	var oldest string
	var seen time.Time
	for ip, entry := range l.ips {
		if oldest == "" || entry.lastSeen.Before(seen) {
			oldest, seen = ip, entry.lastSeen
		}
	}
	delete(l.ips, oldest)
}
