package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"coursehub/pkg/utils"
)

type RateLimiter struct {
	redisClient *redis.Client
	logger      zerolog.Logger
}

// NewRateLimiter accepts a nil client, in which case every limit is a no-op.
func NewRateLimiter(client *redis.Client, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{redisClient: client, logger: logger.With().Str("component", "rate_limiter").Logger()}
}

// Limit allows limit requests per window for each caller. Authenticated
// callers are keyed by user id, anonymous ones by client IP. Redis errors
// let the request through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.redisClient == nil || limit <= 0 {
			c.Next()
			return
		}

		caller := c.ClientIP()
		if actor := Actor(c); !actor.IsAnonymous() {
			caller = actor.ID().String()
		}
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, caller)

		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			rl.logger.Warn().Err(err).Str("key", key).Msg("rate limit check failed")
			c.Next()
			return
		}

		if count == 1 {
			rl.redisClient.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.redisClient.TTL(c, key).Result()
			if ttl > 0 {
				c.Header("Retry-After", fmt.Sprintf("%.0f", ttl.Seconds()))
			}
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
