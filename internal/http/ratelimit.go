package http

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/luhnify/internal/errors"
	"github.com/allisson/luhnify/internal/httputil"
)

const (
	rateLimitCleanupInterval = 5 * time.Minute
	rateLimitStaleAfter      = time.Hour
)

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	limiters sync.Map // client IP -> *rateLimiterEntry
	rps      float64
	burst    int
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// NewRateLimiter creates a per-IP rate limiter and starts its stale entry sweeper.
// Call Close to stop the sweeper.
func NewRateLimiter(rps float64, burst int, logger *slog.Logger) *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())
	rl := &RateLimiter{
		rps:    rps,
		burst:  burst,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go rl.cleanupStale(ctx, rateLimitCleanupInterval, rateLimitStaleAfter)

	return rl
}

// Middleware enforces the limit using c.ClientIP(), which honours
// X-Forwarded-For and X-Real-IP. Rejected requests get 429 with Retry-After.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := rl.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
			reservation.Cancel()
			if retryAfter < 1 {
				retryAfter = 1
			}

			rl.logger.Debug("rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			httputil.HandleErrorGin(c, apperrors.ErrTooManyRequests, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// Close stops the sweeper and waits for it to exit.
func (rl *RateLimiter) Close() {
	rl.cancel()
	<-rl.done
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	now := time.Now()

	if val, ok := rl.limiters.Load(ip); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(rl.rps), rl.burst),
		lastAccess: now,
	}
	actual, _ := rl.limiters.LoadOrStore(ip, entry)
	return actual.(*rateLimiterEntry).limiter
}

func (rl *RateLimiter) cleanupStale(ctx context.Context, interval, staleAfter time.Duration) {
	defer close(rl.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep(time.Now().Add(-staleAfter))
		}
	}
}

// sweep drops limiters last used before threshold.
func (rl *RateLimiter) sweep(threshold time.Time) {
	rl.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			rl.limiters.Delete(key)
		}
		return true
	})
}
