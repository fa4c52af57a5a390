package cache

import (
	"context"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis at addr. The cache is an ops convenience
// here, not a dependency: on any failure the service runs without it and
// the caller gets nil.
func InitRedis(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		log.Println("Redis disabled: no address configured")
		return nil
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("failed to parse REDIS_URL, running without cache: %v", err)
			return nil
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("failed to connect to Redis, running without cache: %v", err)
		return nil
	}
	log.Println("Connected to Redis")
	return client
}
