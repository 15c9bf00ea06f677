package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/buildsense/energy-backend/config"
)

// OpenRedis creates the client and reports whether the server answered a ping.
// The client is returned either way: the cache tolerates an unavailable server.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client, client.Ping(pctx).Err()
}
