package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gariousf/api-backend/pkg/utils"
)

// RateLimiter enforces a fixed request budget per rolling time window
// for each client address.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter allowing limit requests per window
// and starts a background sweep of idle clients. Call Stop to reclaim
// the sweep goroutine.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
		done:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop ends the background sweep. Safe to call more than once; the
// limiter itself keeps working after Stop.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// Allow records a request for addr and reports whether it fits in the
// current window.
func (rl *RateLimiter) Allow(addr string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	recent := pruneOlder(rl.hits[addr], cutoff)

	if len(recent) >= rl.limit {
		rl.hits[addr] = recent
		return false
	}

	rl.hits[addr] = append(recent, rl.now())
	return true
}

// Remaining reports how many requests addr has left in the window.
func (rl *RateLimiter) Remaining(addr string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	used := len(pruneOlder(rl.hits[addr], cutoff))
	if used >= rl.limit {
		return 0
	}
	return rl.limit - used
}

// pruneOlder copies the hits newer than cutoff into a fresh slice; the
// input slice is left untouched so callers may treat this as a pure read.
func pruneOlder(hits []time.Time, cutoff time.Time) []time.Time {
	recent := make([]time.Time, 0, len(hits))
	for _, t := range hits {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	return recent
}

// cleanupLoop drops clients with no hits in the current window so the
// map does not grow with one-off visitors.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := rl.now().Add(-rl.window)
			for addr, hits := range rl.hits {
				if recent := pruneOlder(hits, cutoff); len(recent) == 0 {
					delete(rl.hits, addr)
				} else {
					rl.hits[addr] = recent
				}
			}
			rl.mu.Unlock()
		}
	}
}

// RateLimit returns middleware enforcing the limiter per client IP and
// reporting the budget through X-RateLimit headers.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := clientIP(r)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			if !limiter.Allow(addr) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				utils.RespondError(w, http.StatusTooManyRequests, "rate limit exceeded, try again soon")
				return
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(addr)))

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr; the chi RealIP middleware
// has already substituted forwarded addresses upstream of this.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
