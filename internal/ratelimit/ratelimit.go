// Package ratelimit provides per-client token bucket rate limiting,
// used to throttle the credential endpoints.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/opengrade/gradebook/internal/logger"
)

// Limiter tracks a token bucket per client key
type Limiter struct {
	rate  rate.Limit
	burst int

	limiters   sync.Map // map[string]*rate.Limiter
	lastAccess sync.Map // map[string]time.Time

	cleanupInterval time.Duration
	maxAge          time.Duration
	stopCleanup     chan struct{}
}

// New creates a Limiter allowing rps requests per second with the given
// burst per client key
func New(rps float64, burst int) *Limiter {
	l := &Limiter{
		rate:            rate.Limit(rps),
		burst:           burst,
		cleanupInterval: 5 * time.Minute,
		maxAge:          10 * time.Minute,
		stopCleanup:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Allow reports whether a request from key may proceed
func (l *Limiter) Allow(key string) bool {
	limiter := l.getLimiter(key)
	l.lastAccess.Store(key, time.Now().UTC())
	return limiter.Allow()
}

// Middleware rejects requests over the limit with 429, keyed by client IP
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !l.Allow(key) {
			logger.Ctx(r.Context()).Warn("rate limit exceeded", "client", key, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Stop stops the background cleanup goroutine
func (l *Limiter) Stop() {
	close(l.stopCleanup)
}

func (l *Limiter) getLimiter(key string) *rate.Limiter {
	if existing, ok := l.limiters.Load(key); ok {
		return existing.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(l.rate, l.burst)
	// LoadOrStore may race with another goroutine, keep whichever won
	actual, loaded := l.limiters.LoadOrStore(key, limiter)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return limiter
}

// cleanup periodically drops buckets for clients that went quiet, so the
// maps do not grow without bound
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.dropStale()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *Limiter) dropStale() {
	cutoff := time.Now().UTC().Add(-l.maxAge)
	l.lastAccess.Range(func(key, value interface{}) bool {
		if value.(time.Time).Before(cutoff) {
			l.limiters.Delete(key)
			l.lastAccess.Delete(key)
		}
		return true
	})
}

// clientKey derives the bucket key from the request. RemoteAddr is
// already rewritten by the RealIP middleware when a proxy header exists.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
