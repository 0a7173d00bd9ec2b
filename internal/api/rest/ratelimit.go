package rest

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter is a per-client token bucket stored in memory
type IPLimiter struct {
	visitors  map[string]*visitor
	mu        sync.Mutex
	r         rate.Limit
	b         int
	now       func() time.Time
	lastPrune time.Time
}

// NewIPLimiter creates a limiter allowing rps requests per second with the given burst.
// A non-positive rps disables limiting.
func NewIPLimiter(rps float64, burst int) *IPLimiter {
	if burst < 1 {
		burst = 1
	}

	return &IPLimiter{
		visitors: make(map[string]*visitor),
		r:        rate.Limit(rps),
		b:        burst,
		now:      time.Now,
	}
}

// Enabled reports whether requests are limited at all
func (l *IPLimiter) Enabled() bool {
	return l.r > 0
}

// Allow checks if the client is allowed to perform a request
func (l *IPLimiter) Allow(key string) bool {
	if !l.Enabled() {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	v, exists := l.visitors[key]

	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.r, l.b)}
		l.visitors[key] = v
	}

	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// prune drops clients not seen for limiterIdleTTL, at most once per TTL
func (l *IPLimiter) prune(now time.Time) {
	if now.Sub(l.lastPrune) < limiterIdleTTL {
		return
	}

	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= limiterIdleTTL {
			delete(l.visitors, key)
		}
	}

	l.lastPrune = now
}

func (l *IPLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.visitors)
}
