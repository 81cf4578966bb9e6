package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// fakeClock is a settable time source
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(capacity int) (*IPRateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewIPRateLimiter(rate.Limit(1), 1)
	l.now = clock.now
	l.capacity = capacity
	return l, clock
}

func TestLimiterReusesBucket(t *testing.T) {
	l, _ := newTestLimiter(8)
	a := l.GetLimiter("10.0.0.1")
	if l.GetLimiter("10.0.0.1") != a {
		t.Error("same address got a new bucket")
	}
	if l.GetLimiter("10.0.0.2") == a {
		t.Error("different addresses share a bucket")
	}
}

func TestLimiterEvictsIdle(t *testing.T) {
	l, clock := newTestLimiter(8)
	l.GetLimiter("10.0.0.1")
	l.GetLimiter("10.0.0.2")

	clock.t = clock.t.Add(limiterIdle / 2)
	l.GetLimiter("10.0.0.2")

	clock.t = clock.t.Add(limiterIdle/2 + time.Second)
	if n := l.Evict(); n != 1 {
		t.Errorf("Evict() = %d, want 1", n)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestLimiterCapacity(t *testing.T) {
	l, clock := newTestLimiter(4)
	for i := 0; i < 4; i++ {
		l.GetLimiter(fmt.Sprintf("10.0.0.%d", i))
		clock.t = clock.t.Add(time.Second)
	}
	keep := l.GetLimiter("10.0.0.3")

	// None are idle, so the least recently seen address makes room
	l.GetLimiter("10.0.1.1")
	if l.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", l.Len())
	}
	l.mu.Lock()
	_, oldest := l.ips["10.0.0.0"]
	l.mu.Unlock()
	if oldest {
		t.Error("oldest address survived a full table")
	}
	if l.GetLimiter("10.0.0.3") != keep {
		t.Error("recent address was evicted")
	}
}

func TestLimiterSweepStops(t *testing.T) {
	l, _ := newTestLimiter(8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Sweep(ctx, time.Millisecond)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Sweep did not return after cancel")
	}
}
