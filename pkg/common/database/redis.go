package database

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/synthetica-health/platform/pkg/common/config"
	"github.com/synthetica-health/platform/pkg/common/logger"
)

var (
	rdb     *redis.Client
	rdbOnce sync.Once
)

// GetRedis returns the shared client. A failed ping is logged but the
// client is still returned; callers treat Redis as a best-effort cache.
func GetRedis() *redis.Client {
	rdbOnce.Do(func() {
		cfg := config.Load()
		rdb = redis.NewClient(&redis.Options{
			Addr:        net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			DialTimeout: 3 * time.Second,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.WithError(err).Warn("Redis unreachable, summary caching degraded")
			return
		}
		logger.Log.Info("Connected to Redis")
	})

	return rdb
}

func CloseRedis() error {
	if rdb == nil {
		return nil
	}
	return rdb.Close()
}
