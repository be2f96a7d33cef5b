// internal/antidetect/antidetect.go
package antidetect

import (
	"context"
	"math/rand"
	"sync"

	"golang.org/x/time/rate"
)

// UserAgentRotator rotates user agents across browser sessions so that
// concurrent workers do not present an identical fingerprint.
type UserAgentRotator struct {
	agents []string
	mu     sync.RWMutex
	index  int
}

// NewUserAgentRotator creates a new user agent rotator. An empty list
// falls back to a built-in pool of current desktop browser agents.
func NewUserAgentRotator(agents []string) *UserAgentRotator {
	if len(agents) == 0 {
		agents = getDefaultUserAgents()
	}
	return &UserAgentRotator{
		agents: agents,
	}
}

// GetNext returns the next user agent in round-robin order.
func (r *UserAgentRotator) GetNext() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	agent := r.agents[r.index]
	r.index = (r.index + 1) % len(r.agents)
	return agent
}

// GetRandom returns a random user agent.
func (r *UserAgentRotator) GetRandom() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.agents[rand.Intn(len(r.agents))]
}

// RateLimiter bounds the rate of page fetches across all workers.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter allowing requestsPerSecond sustained
// fetches with the given burst.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a fetch is permitted or the context is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

// getDefaultUserAgents returns a pool of common desktop user agents.
func getDefaultUserAgents() []string {
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:124.0) Gecko/20100101 Firefox/124.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Safari/605.1.15",
	}
}
