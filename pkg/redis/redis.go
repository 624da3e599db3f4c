package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/obiano/waitlist-api/pkg/circuitbreaker"
	"github.com/go-redis/redis/v8"
)

type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// RedisCache wraps a go-redis client behind a circuit breaker so a flapping
// Redis instance cannot stall every request that touches the cache.
type RedisCache struct {
	client  *redis.Client
	breaker circuitbreaker.CircuitBreaker
}

func NewRedisCache(config *Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr(),
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Addr(), err)
	}

	return &RedisCache{
		client:  client,
		breaker: circuitbreaker.NewCircuitBreaker(nil),
	}, nil
}

// Get returns ("", nil) when the key does not exist.
func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := rc.breaker.Call(func() error {
		result, err := rc.client.Get(ctx, key).Result()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return err
		}
		value = result
		return nil
	})

	return value, err
}

// Set stores a value; ttl=0 means no expiry.
func (rc *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return rc.breaker.Call(func() error {
		return rc.client.Set(ctx, key, value, ttl).Err()
	})
}

func (rc *RedisCache) Delete(ctx context.Context, key string) error {
	return rc.breaker.Call(func() error {
		return rc.client.Del(ctx, key).Err()
	})
}

func (rc *RedisCache) Ping(ctx context.Context) error {
	return rc.breaker.Call(func() error {
		return rc.client.Ping(ctx).Err()
	})
}

func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// GetClient exposes the underlying client for callers that need direct access,
// such as the Lua-scripted rate limiter.
func (rc *RedisCache) GetClient() *redis.Client {
	return rc.client
}
