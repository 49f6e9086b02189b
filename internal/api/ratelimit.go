package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// INCR 后首次命中时设置过期，返回 {count, pttl}
var incrExpireScript = redis.NewScript(`
local c = redis.call('INCR', KEYS[1])
if c == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {c, ttl}
`)

// RateLimiter 基于 Redis 的固定窗口限流
type RateLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

// NewRateLimiter rdb 为空或 max<=0 时返回的限流器直接放行
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{rdb: rdb, max: limit, window: window}
}

func (l *RateLimiter) enabled() bool {
	return l != nil && l.rdb != nil && l.max > 0
}

// KeyByIPAndPath 按客户端 IP 与路由分桶
func KeyByIPAndPath(c *gin.Context) string {
	return "rl:" + c.ClientIP() + ":" + c.FullPath()
}

// Middleware Redis 不可用时放行（fail-open）
func (l *RateLimiter) Middleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.enabled() || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 200*time.Millisecond)
		defer cancel()

		res, err := incrExpireScript.Run(ctx, l.rdb, []string{keyFn(c)}, l.window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			logrus.WithError(err).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		count, ttl := res[0], res[1]
		if ttl < 0 {
			ttl = l.window.Milliseconds()
		}
		remaining := int64(l.max) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.max))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Duration(ttl)*time.Millisecond).Unix(), 10))

		if count > int64(l.max) {
			retry := (ttl + 999) / 1000
			c.Header("Retry-After", strconv.FormatInt(retry, 10))
			ErrorResponse(c, http.StatusTooManyRequests, ErrCodeTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
