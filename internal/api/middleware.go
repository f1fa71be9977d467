package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/codyseavey/shoprank/internal/config"
	"github.com/codyseavey/shoprank/internal/metrics"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// RequestID echoes the caller's X-Request-ID or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Metrics records request counts and latency per route template
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RateLimiter keeps one token bucket per client IP. The least recently seen
// clients are evicted once MaxClients is reached.
type RateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// NewRateLimiter creates a rate limiter from config
func NewRateLimiter(cfg config.RateLimitConfig) (*RateLimiter, error) {
	size := cfg.MaxClients
	if size <= 0 {
		size = 4096
	}
	cache, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		return nil, err
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: cache,
		limit:    rate.Limit(cfg.RequestsPerSecond),
		burst:    burst,
	}, nil
}

func (r *RateLimiter) limiterFor(key string) *rate.Limiter {
	if l, ok := r.limiters.Get(key); ok {
		return l
	}
	l := rate.NewLimiter(r.limit, r.burst)
	if prev, ok, _ := r.limiters.PeekOrAdd(key, l); ok {
		return prev
	}
	return l
}

// Allow reports whether a request from key may proceed
func (r *RateLimiter) Allow(key string) bool {
	return r.limiterFor(key).Allow()
}

// Middleware rejects requests over the limit with 429
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			metrics.RateLimitedTotal.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
