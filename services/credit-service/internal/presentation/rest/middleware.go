package rest

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every HTTP request with method, path, status, duration and request id.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// RateLimiter is a single token bucket.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	now        func() time.Time
}

// NewRateLimiter allows rps requests per second with a burst of rps.
func NewRateLimiter(rps int) *RateLimiter {
	return &RateLimiter{
		tokens:     float64(rps),
		maxTokens:  float64(rps),
		refillRate: float64(rps),
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// Allow consumes one token if available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.tokens += now.Sub(rl.lastRefill).Seconds() * rl.refillRate
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// clientIdleTTL is how long an unused client bucket is kept.
const clientIdleTTL = 10 * time.Minute

// ClientRateLimiter keeps one token bucket per client address.
type ClientRateLimiter struct {
	mu        sync.Mutex
	rps       int
	buckets   map[string]*RateLimiter
	lastSweep time.Time
	now       func() time.Time
}

// NewClientRateLimiter allows each client rps requests per second.
func NewClientRateLimiter(rps int) *ClientRateLimiter {
	return &ClientRateLimiter{
		rps:       rps,
		buckets:   make(map[string]*RateLimiter),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow consumes a token from the bucket of client.
func (c *ClientRateLimiter) Allow(client string) bool {
	c.mu.Lock()
	now := c.now()
	if now.Sub(c.lastSweep) >= clientIdleTTL {
		c.sweep(now)
	}
	bucket, ok := c.buckets[client]
	if !ok {
		bucket = NewRateLimiter(c.rps)
		bucket.now = c.now
		bucket.lastRefill = now
		c.buckets[client] = bucket
	}
	c.mu.Unlock()

	return bucket.Allow()
}

// sweep drops buckets idle for longer than clientIdleTTL. Callers hold c.mu.
func (c *ClientRateLimiter) sweep(now time.Time) {
	for key, bucket := range c.buckets {
		bucket.mu.Lock()
		idle := now.Sub(bucket.lastRefill)
		bucket.mu.Unlock()
		if idle >= clientIdleTTL {
			delete(c.buckets, key)
		}
	}
	c.lastSweep = now
}

func (c *ClientRateLimiter) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buckets)
}

// clientKey is the remote IP without its port.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware rejects a client with 429 once its bucket is empty.
func RateLimitMiddleware(limiter *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
