package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter implements per-IP token bucket rate limiting.
type RateLimiter struct {
	limiters sync.Map // map[string]*ipLimiter
	stop     chan struct{}
}

type ipLimiter struct {
	limiter *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter with background cleanup.
// Call Stop() on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware that rate-limits requests to maxPerMinute per IP.
// The bucket allows a burst of maxPerMinute and refills continuously.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := rl.getLimiter(r.RemoteAddr, maxPerMinute)
			if !l.Allow() {
				retryAfter := 60.0 / float64(maxPerMinute)
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter)+1))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) getLimiter(key string, maxPerMinute int) *rate.Limiter {
	val, _ := rl.limiters.LoadOrStore(key, &ipLimiter{
		limiter: rate.NewLimiter(rate.Limit(maxPerMinute)/60, maxPerMinute),
	})

	il := val.(*ipLimiter)
	il.mu.Lock()
	il.lastSeen = time.Now()
	il.mu.Unlock()
	return il.limiter
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.limiters.Range(func(key, value any) bool {
				il := value.(*ipLimiter)
				il.mu.Lock()
				idle := now.Sub(il.lastSeen)
				il.mu.Unlock()
				if idle > 10*time.Minute {
					rl.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
