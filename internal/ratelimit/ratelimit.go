// Package ratelimit implements a sliding-window request limiter keyed by
// caller, used per Discord user by the bot and per client IP by the web API.
package ratelimit

import (
	"sync"
	"time"
)

type Limiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
}

// New allows max requests per key within any window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		requests: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	pruned := l.live(l.requests[key], now)

	if len(pruned) >= l.max {
		l.requests[key] = pruned
		return false
	}

	l.requests[key] = append(pruned, now)
	return true
}

// Prune drops expired requests and forgets keys with none left.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, timestamps := range l.requests {
		live := l.live(timestamps, now)
		if len(live) == 0 {
			delete(l.requests, key)
			continue
		}
		l.requests[key] = live
	}
}

// PruneEvery calls Prune on each tick until stop is closed.
func (l *Limiter) PruneEvery(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Prune()
		case <-stop:
			return
		}
	}
}

func (l *Limiter) live(timestamps []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	var pruned []time.Time
	for _, t := range timestamps {
		if t.After(cutoff) {
			pruned = append(pruned, t)
		}
	}
	return pruned
}
