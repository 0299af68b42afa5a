package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit returns a fixed-window limiter for the routes it is mounted
// on, counting requests per client IP and route in Redis. With no Redis
// client, or when Redis errors mid-request, requests pass through
// unthrottled rather than failing the route.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) echo.MiddlewareFunc {
	if rdb == nil || limit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := "rl:" + c.RealIP() + ":" + c.Path()

			pipe := rdb.TxPipeline()
			count := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, window)
			if _, err := pipe.Exec(ctx); err != nil {
				c.Logger().Warnf("rate limit unavailable for %s: %v", key, err)
				return next(c)
			}

			n := count.Val()
			remaining := int64(limit) - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(limit) {
				ttl, err := rdb.TTL(ctx, key).Result()
				if err != nil || ttl < 0 {
					ttl = window
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds()+1)))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "too many requests, slow down",
				})
			}
			return next(c)
		}
	}
}
