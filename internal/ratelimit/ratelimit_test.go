package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMax    = 5
	testWindow = time.Minute
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter() (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(testMax, testWindow)
	l.now = clock.Now
	return l, clock
}

func TestAllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter()
	for i := range testMax {
		require.True(t, l.Allow("user-1"), "request %d should be allowed", i+1)
	}
	assert.False(t, l.Allow("user-1"), "request beyond limit should be denied")
}

func TestIsolatesKeys(t *testing.T) {
	l, _ := newTestLimiter()
	for range testMax {
		l.Allow("user-1")
	}
	assert.False(t, l.Allow("user-1"))
	assert.True(t, l.Allow("user-2"), "different key should not be affected")
}

func TestResetsAfterWindow(t *testing.T) {
	l, clock := newTestLimiter()
	for range testMax {
		l.Allow("user-1")
	}
	require.False(t, l.Allow("user-1"))

	clock.Advance(testWindow + time.Second)
	assert.True(t, l.Allow("user-1"), "should allow after old entries expire")
}

func TestSlidingWindow(t *testing.T) {
	l, clock := newTestLimiter()
	for range testMax - 1 {
		l.Allow("user-1")
	}
	clock.Advance(testWindow / 2)
	require.True(t, l.Allow("user-1"))
	require.False(t, l.Allow("user-1"))

	// Only the first batch has left the window.
	clock.Advance(testWindow/2 + time.Second)
	for range testMax - 1 {
		require.True(t, l.Allow("user-1"))
	}
	assert.False(t, l.Allow("user-1"))
}

func TestPruneForgetsIdleKeys(t *testing.T) {
	l, clock := newTestLimiter()
	l.Allow("idle")
	clock.Advance(testWindow / 2)
	l.Allow("active")
	clock.Advance(testWindow/2 + time.Second)

	l.Prune()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.requests, "idle")
	assert.Contains(t, l.requests, "active")
}

func TestPruneKeepsLiveRequests(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(2, time.Minute)
	l.now = clock.Now

	require.True(t, l.Allow("user"))
	clock.Advance(50 * time.Second)
	require.True(t, l.Allow("user"))
	clock.Advance(20 * time.Second)

	l.Prune()

	l.mu.Lock()
	stored := append([]time.Time(nil), l.requests["user"]...)
	l.mu.Unlock()
	require.Len(t, stored, 1)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 50, 0, time.UTC), stored[0])

	assert.True(t, l.Allow("user"), "one live request is under the limit of two")
	assert.False(t, l.Allow("user"))
}

func TestPruneEveryStops(t *testing.T) {
	l, _ := newTestLimiter()
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		l.PruneEvery(time.Millisecond, stop)
		close(done)
	}()
	close(stop)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PruneEvery did not stop")
	}
}

func TestConcurrentAccess(t *testing.T) {
	l, _ := newTestLimiter()
	var wg sync.WaitGroup
	allowed := make([]int, 10)

	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("user-%d", i)
			for range testMax + 2 {
				if l.Allow(key) {
					allowed[i]++
				}
			}
		}()
	}
	wg.Wait()

	for i, count := range allowed {
		assert.Equal(t, testMax, count, "user-%d should have exactly %d allowed requests", i, testMax)
	}
}
