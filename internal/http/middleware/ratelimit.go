package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleBucketTTL is how long a client's bucket survives without traffic.
const idleBucketTTL = 10 * time.Minute

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter throttles clients by IP with one token bucket each. Buckets
// are process-local and swept lazily once they have been idle for a while.
type RateLimiter struct {
	limit  rate.Limit
	burst  int
	exempt map[string]struct{}

	mu      sync.Mutex
	buckets map[string]*bucket
	sweptAt time.Time
	now     func() time.Time
}

// NewRateLimiter allows rps sustained requests per client with the given
// burst. Requests whose path is in exempt (e.g. "/health") are never
// throttled. A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int, exempt ...string) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	lim := rate.Limit(rps)
	if rps <= 0 {
		lim = rate.Inf
	}
	ex := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		ex[p] = struct{}{}
	}
	return &RateLimiter{
		limit:   lim,
		burst:   burst,
		exempt:  ex,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Middleware rejects over-limit requests with 429 and a Retry-After hint.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := rl.exempt[c.Request.URL.Path]; ok || rl.limit == rate.Inf {
			c.Next()
			return
		}
		if rl.allow(c.ClientIP()) {
			c.Next()
			return
		}

		rid := RequestIDFrom(c)
		c.Header("Retry-After", strconv.Itoa(rl.retryAfter()))
		LoggerFrom(c).Warn().Msg("rate limited")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": rid,
			"code":       "too_many_requests",
			"message":    "rate limit exceeded",
		})
	}
}

func (rl *RateLimiter) allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	if now.Sub(rl.sweptAt) > idleBucketTTL {
		for k, b := range rl.buckets {
			if now.Sub(b.seen) > idleBucketTTL {
				delete(rl.buckets, k)
			}
		}
		rl.sweptAt = now
	}
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.seen = now
	rl.mu.Unlock()

	return b.lim.AllowN(now, 1)
}

// retryAfter is the whole number of seconds until one token refills.
func (rl *RateLimiter) retryAfter() int {
	secs := int(1 / float64(rl.limit))
	if secs < 1 {
		return 1
	}
	return secs
}

// size reports the number of live buckets.
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}
