package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bookshelf/internal/utils"
)

type RateLimitConfig struct {
	Burst             int           // bucket capacity per client IP
	RefillPerIPPerMin int           // tokens regained per minute
	MaxEntries        int           // sweep idle buckets once this many are tracked (0 = no limit)
	IdleTTL           time.Duration // buckets unused for this long are dropped
	TrustProxy        bool          // resolve the client IP from proxy headers
	Now               func() time.Time
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	if c.Burst < 1 {
		c.Burst = 1
	}
	if c.RefillPerIPPerMin < 1 {
		c.RefillPerIPPerMin = 1
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 15 * time.Minute
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

type bucket struct {
	tokens   float64
	refilled time.Time
}

// limiter is a per-key token bucket. One mutex guards all buckets.
type limiter struct {
	cfg       RateLimitConfig
	perSecond float64

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	cfg = cfg.withDefaults()
	return &limiter{
		cfg:       cfg,
		perSecond: float64(cfg.RefillPerIPPerMin) / 60.0,
		buckets:   make(map[string]*bucket),
		lastSweep: cfg.Now(),
	}
}

// take consumes one token for key. When none is left it reports how many
// seconds until the next one.
func (l *limiter) take(key string, now time.Time) (ok bool, remaining int, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	capacity := float64(l.cfg.Burst)
	b := l.buckets[key]
	if b == nil {
		b = &bucket{tokens: capacity, refilled: now}
		l.buckets[key] = b
	}

	if elapsed := now.Sub(b.refilled).Seconds(); elapsed > 0 {
		b.tokens = math.Min(capacity, b.tokens+elapsed*l.perSecond)
		b.refilled = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}

	wait := int(math.Ceil((1 - b.tokens) / l.perSecond))
	if wait < 1 {
		wait = 1
	}
	return false, 0, wait
}

// sweep drops idle buckets, at most once per IdleTTL unless the map is full.
func (l *limiter) sweep(now time.Time) {
	full := l.cfg.MaxEntries > 0 && len(l.buckets) >= l.cfg.MaxEntries
	if !full && now.Sub(l.lastSweep) < l.cfg.IdleTTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.refilled) > l.cfg.IdleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// RateLimit throttles each client IP with a token bucket and answers 429
// with a Retry-After header once the bucket is empty.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg)
	limit := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := utils.ClientIP(r, l.cfg.TrustProxy)

			ok, remaining, retryAfter := l.take(key, l.cfg.Now())
			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeFail(w, http.StatusTooManyRequests, "Too many requests, please retry later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
