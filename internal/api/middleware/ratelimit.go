package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/apierr"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs
	cleanupThreshold = 500
	// maxIdleAge is how long an IP can go unseen before its entry is pruned
	maxIdleAge = 10 * time.Minute
)

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out a token bucket per client IP
type IPRateLimiter struct {
	ips map[string]*ipEntry
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

// NewIPRateLimiter creates a limiter allowing perSecond requests with the given burst
func NewIPRateLimiter(perSecond float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*ipEntry),
		r:   rate.Limit(perSecond),
		b:   burst,
	}
}

// Limiter returns the bucket for ip, pruning idle entries once the map grows
func (l *IPRateLimiter) Limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if len(l.ips) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for k, e := range l.ips {
			if e.lastSeen.Before(cutoff) {
				delete(l.ips, k)
			}
		}
	}

	e, ok := l.ips[ip]
	if !ok {
		e = &ipEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.ips[ip] = e
	}
	e.lastSeen = now

	return e.limiter
}

// RateLimit rejects requests over the per-IP budget with 429. Buckets are
// keyed on the connection address; X-Forwarded-For is client-controlled
// and is ignored here.
func RateLimit(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Limiter(remoteHost(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				apierr.WriteError(w, apierr.NewRateLimitedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
