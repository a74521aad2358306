package signal

import (
	"sync"

	"github.com/dkeye/Doodle/internal/domain"
	"golang.org/x/time/rate"
)

// RateLimiter throttles inbound messages per connection with a token bucket.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[domain.PlayerID]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows perSecond messages with bursts of burst. A non-positive rate
// disables limiting.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[domain.PlayerID]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (rl *RateLimiter) Allow(sid domain.PlayerID) bool {
	rl.mu.Lock()
	l, ok := rl.limiters[sid]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[sid] = l
	}
	rl.mu.Unlock()
	return l.Allow()
}

func (rl *RateLimiter) Forget(sid domain.PlayerID) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.limiters, sid)
}
