package redis_fx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"coursehub/internal/config"
	"coursehub/pkg/middleware"
)

var Module = fx.Provide(provideRedisClient, provideRateLimiter)

// provideRedisClient returns nil when REDIS_ADDR is unset; rate limiting is then disabled.
func provideRedisClient(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		logger.Warn().Msg("REDIS_ADDR not set, rate limiting disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := client.Ping(pingCtx).Err(); err != nil {
				return fmt.Errorf("ping redis: %w", err)
			}
			logger.Info().Str("addr", cfg.RedisAddr).Msg("Redis connection established")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

func provideRateLimiter(client *redis.Client, logger zerolog.Logger) *middleware.RateLimiter {
	return middleware.NewRateLimiter(client, logger)
}
