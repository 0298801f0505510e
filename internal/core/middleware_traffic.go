package core

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"golang.org/x/time/rate"

	"activitycast/internal/types"
)

// Idle client buckets are swept after this long.
const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

// compressionMinSize is the smallest response body worth compressing.
const compressionMinSize = 1024

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client IP.
type clientLimiter struct {
	rps   rate.Limit
	burst int

	mu        sync.Mutex
	clients   map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*limiterEntry),
		now:     time.Now,
	}
}

// reserve takes one token for key. It returns 0 when the request may proceed,
// otherwise how long the client should wait. Denied reservations are
// cancelled so they do not consume future capacity.
func (c *clientLimiter) reserve(key string) (time.Duration, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) > limiterSweepInterval {
		for k, e := range c.clients {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(c.clients, k)
			}
		}
		c.lastSweep = now
	}

	e, ok := c.clients[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(c.rps, c.burst)}
		c.clients[key] = e
	}
	e.lastSeen = now

	r := e.limiter.ReserveN(now, 1)
	if !r.OK() {
		return time.Second, 0
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return delay, 0
	}
	return 0, e.limiter.TokensAt(now)
}

func (c *clientLimiter) reset() {
	c.mu.Lock()
	c.clients = make(map[string]*limiterEntry)
	c.mu.Unlock()
}

// RateLimit enforces a per-client token bucket keyed by client IP.
//
// If no limiter is configured (RATE_LIMIT_RPS=0 or tests), the middleware
// passes through.
//
// Allowed responses carry:
//   - X-RateLimit-Limit: The bucket size.
//   - X-RateLimit-Remaining: Whole tokens left after this request.
//
// Rejected responses are 429 with a Retry-After header in seconds.
func (s *Server) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		ip := extractClientIP(r)
		wait, remaining := s.limiter.reserve(ip)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(s.limiter.burst))

		if wait > 0 {
			s.Logger.Warn("rate limit exceeded",
				slog.String("client_ip", ip),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Max(1, math.Ceil(wait.Seconds())))))

			Error(w, r, types.NewAppError(
				types.ErrCodeRateLimit,
				"Rate limit exceeded. Please retry after the indicated delay.",
				nil,
			))
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(math.Max(0, math.Floor(remaining)))))
		next.ServeHTTP(w, r)
	})
}

// NewCompressionMiddleware gzips responses larger than compressionMinSize for
// clients that accept it. When disabled it returns a pass-through.
func NewCompressionMiddleware(enabled bool) (func(http.Handler) http.Handler, error) {
	if !enabled {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(compressionMinSize))
	if err != nil {
		return nil, err
	}
	return func(next http.Handler) http.Handler {
		return wrap(next)
	}, nil
}

// extractClientIP extracts the client's IP address from the request.
// It first checks the X-Forwarded-For header (using the first entry, which
// is the original client IP when behind a proxy/load balancer). If that
// header is not present, it falls back to RemoteAddr.
//
// The returned IP is always stripped of the port number if present.
func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.SplitN(xff, ",", 2)
		ip := strings.TrimSpace(parts[0])
		if ip != "" {
			return ip
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr may not have a port (e.g., in tests).
		return r.RemoteAddr
	}
	return ip
}
