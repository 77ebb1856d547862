package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/sadanand-singh/news-agent/internal/logger"
)

// Limiter enforces two independent constraints per named provider: a
// request budget per reset window and a minimum interval between
// consecutive requests. The Brave free tier allows roughly one request
// every 1.5s, and Gemini calls are budgeted per run day.
type Limiter struct {
	mu        sync.Mutex
	counts    map[string]int
	last      map[string]time.Time
	budgets   map[string]int
	intervals map[string]time.Duration
	resetTime time.Time
	window    time.Duration
}

func New(window time.Duration) *Limiter {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Limiter{
		counts:    make(map[string]int),
		last:      make(map[string]time.Time),
		budgets:   make(map[string]int),
		intervals: make(map[string]time.Duration),
		resetTime: time.Now().Add(window),
		window:    window,
	}
}

// SetBudget caps total requests for a provider per window. Zero means
// unlimited.
func (l *Limiter) SetBudget(provider string, max int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.budgets[provider] = max
}

// SetMinInterval sets the pacing floor between two requests to a provider.
func (l *Limiter) SetMinInterval(provider string, d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intervals[provider] = d
}

// Acquire blocks until the provider may be called, or fails immediately if
// the window budget is exhausted.
func (l *Limiter) Acquire(provider string) error {
	l.mu.Lock()

	l.checkReset()

	if max := l.budgets[provider]; max > 0 && l.counts[provider] >= max {
		count := l.counts[provider]
		l.mu.Unlock()
		logger.Warn("rate limit budget exhausted", "provider", provider, "used", count, "max", max)
		return fmt.Errorf("%s: request budget exhausted (%d/%d)", provider, count, max)
	}

	var wait time.Duration
	if interval := l.intervals[provider]; interval > 0 {
		if since := time.Since(l.last[provider]); since < interval {
			wait = interval - since
		}
	}

	l.counts[provider]++
	l.last[provider] = time.Now().Add(wait)
	l.mu.Unlock()

	if wait > 0 {
		time.Sleep(wait)
	}
	return nil
}

// Usage reports requests used this window.
func (l *Limiter) Usage(provider string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkReset()
	return l.counts[provider]
}

func (l *Limiter) checkReset() {
	if time.Now().After(l.resetTime) {
		l.counts = make(map[string]int)
		l.resetTime = time.Now().Add(l.window)
	}
}
