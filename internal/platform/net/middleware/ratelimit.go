package middleware

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	perr "langid/internal/platform/errors"
	"langid/internal/platform/metrics"
	pnet "langid/internal/platform/net"

	"golang.org/x/time/rate"
)

// RateLimitOptions configures the per-client token bucket
type RateLimitOptions struct {
	RPS   float64 // tokens per second; <= 0 disables limiting
	Burst int
	// IdleTTL evicts limiters of clients not seen for this long; 0 means 10 minutes
	IdleTTL time.Duration
}

type clientLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter hands out one token bucket per client IP
type RateLimiter struct {
	opt     RateLimitOptions
	mu      sync.Mutex
	clients map[string]*clientLimiter
	sweep   time.Time
	now     func() time.Time
}

// NewRateLimiter builds a limiter; Burst below 1 is raised to 1
func NewRateLimiter(opt RateLimitOptions) *RateLimiter {
	if opt.Burst < 1 {
		opt.Burst = 1
	}
	if opt.IdleTTL <= 0 {
		opt.IdleTTL = 10 * time.Minute
	}
	return &RateLimiter{opt: opt, clients: make(map[string]*clientLimiter), now: time.Now}
}

// Allow reports whether ip may proceed now
func (l *RateLimiter) Allow(ip string) bool {
	if l.opt.RPS <= 0 {
		return true
	}
	now := l.now()

	l.mu.Lock()
	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{lim: rate.NewLimiter(rate.Limit(l.opt.RPS), l.opt.Burst)}
		l.clients[ip] = c
	}
	c.seen = now
	if now.Sub(l.sweep) >= l.opt.IdleTTL {
		for k, v := range l.clients {
			if now.Sub(v.seen) >= l.opt.IdleTTL {
				delete(l.clients, k)
			}
		}
		l.sweep = now
	}
	l.mu.Unlock()

	return c.lim.AllowN(now, 1)
}

// Clients returns the number of tracked client buckets
func (l *RateLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Handler rejects over-limit clients with 429 and a Retry-After hint
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	retry := "1"
	if l.opt.RPS > 0 {
		retry = strconv.Itoa(int(math.Ceil(1 / l.opt.RPS)))
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.Allow(pnet.ClientIP(r)) {
			next.ServeHTTP(w, r)
			return
		}
		metrics.RecordRateLimited(routeOf(r))

		err := perr.TooManyRequestsf("rate limit exceeded")
		status, wire := perr.HTTP(err)
		w.Header().Set("Retry-After", retry)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status_code": status,
			"status":      http.StatusText(status),
			"code":        wire.Code,
			"error":       wire.Message,
			"request_id":  pnet.RequestID(r.Context()),
		})
	})
}
