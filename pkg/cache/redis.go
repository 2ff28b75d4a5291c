package cache

import (
	"context"
	"time"

	"github.com/Guimenn/mobiliai-inventory/config"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only if it still holds our token, so a
// lock that expired and was re-acquired by someone else is never released.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg *config.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisClient{Client: client}, nil
}

// AcquireLock attempts a SET NX with the given TTL. Returns false without
// error when the lock is held by someone else.
func (c *RedisClient) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.Client.SetNX(ctx, key, value, ttl).Result()
}

// ReleaseLock releases the lock if value still matches.
func (c *RedisClient) ReleaseLock(ctx context.Context, key, value string) error {
	return releaseScript.Run(ctx, c.Client, []string{key}, value).Err()
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}
