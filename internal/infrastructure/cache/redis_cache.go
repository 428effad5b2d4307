package cache

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"ticketing_recurrente/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

// RedisCache backs webhook deduplication and the payment confirmation lock.
// SetIfAbsent maps to SET NX so both uses stay atomic across replicas.
type RedisCache struct {
	client *redis.Client
}

var _ interfaces.ICache = (*RedisCache)(nil)

// ConnectRedis builds a client from environment variables.
//
// Supported env vars:
//   - REDIS_ADDR (default: localhost:6379)
//   - REDIS_PASSWORD (optional)
//   - REDIS_DB (unused; database 0)
func ConnectRedis() *RedisCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("[cache][redis] ping failed addr=%s err=%v", addr, err)
	}
	return &RedisCache{client: client}
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (c *RedisCache) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, value, ttl).Result()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
