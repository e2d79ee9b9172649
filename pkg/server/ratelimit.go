package server

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	defaultLimiterCacheSize = 10_000
	defaultLimiterTTL       = 10 * time.Minute
)

// clientRateLimiter keeps one token bucket per client. Idle clients age out
// of the LRU so memory stays bounded under address churn.
type clientRateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func newClientRateLimiter(perSecond float64, burst int, size int, ttl time.Duration) *clientRateLimiter {
	return &clientRateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](size, nil, ttl),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

// Allow reports whether the client may make a request now.
func (c *clientRateLimiter) Allow(client string) bool {
	c.mu.Lock()
	limiter, ok := c.limiters.Get(client)
	if !ok {
		limiter = rate.NewLimiter(c.limit, c.burst)
		c.limiters.Add(client, limiter)
	}
	c.mu.Unlock()

	return limiter.Allow()
}

// Len is the number of clients currently tracked.
func (c *clientRateLimiter) Len() int {
	return c.limiters.Len()
}
