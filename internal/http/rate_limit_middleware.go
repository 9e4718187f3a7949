package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// rateLimiterStore holds per-client rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters sync.Map // map[string]*rateLimiterEntry keyed by client IP
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// RateLimiter enforces per-client rate limiting and owns the background
// cleanup of stale per-client state. Stop must be called when the limiter is
// no longer needed.
type RateLimiter struct {
	store  *rateLimiterStore
	logger *slog.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRateLimiter creates a rate limiter using a token bucket per client IP
// via golang.org/x/time/rate.
//
// Configuration:
//   - rps: Requests per second allowed per client
//   - burst: Maximum burst capacity for temporary spikes
func NewRateLimiter(rps float64, burst int, logger *slog.Logger) *RateLimiter {
	store := &rateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &RateLimiter{
		store:  store,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	// Cleanup goroutine for stale limiters (every 5 minutes), runs until Stop.
	go func() {
		defer close(r.done)
		store.cleanupStale(ctx, 5*time.Minute)
	}()

	return r
}

// Stop terminates the cleanup goroutine and waits for it to exit.
func (r *RateLimiter) Stop() {
	r.cancel()
	<-r.done
}

// Middleware returns the Gin handler enforcing the limit.
//
// Returns:
//   - 429 Too Many Requests: Rate limit exceeded (includes Retry-After header)
//   - Continues: Request allowed within rate limit
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := r.store.getLimiter(c.ClientIP())

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()

			r.logger.Debug("rate limit exceeded",
				slog.String("client_ip", c.ClientIP()),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getLimiter retrieves or creates a rate limiter for a client IP.
func (s *rateLimiterStore) getLimiter(clientIP string) *rate.Limiter {
	if val, ok := s.limiters.Load(clientIP); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(s.rps), s.burst)
	entry := &rateLimiterEntry{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	s.limiters.Store(clientIP, entry)
	return limiter
}

// cleanupStale removes rate limiters that haven't been accessed recently.
// Runs periodically to prevent unbounded memory growth.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-interval)
			s.limiters.Range(func(key, val any) bool {
				entry := val.(*rateLimiterEntry)
				entry.mu.Lock()
				stale := entry.lastAccess.Before(cutoff)
				entry.mu.Unlock()
				if stale {
					s.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
