package announce

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "academy:visitor:"

// RedisStorage keeps one visitor's values in Redis so they survive cookie
// loss on the server side.
type RedisStorage struct {
	rdb     goredis.UniversalClient
	visitor string
	ttl     time.Duration
}

// NewRedisStorage scopes rdb to a single visitor id. A zero ttl keeps values
// forever.
func NewRedisStorage(rdb goredis.UniversalClient, visitor string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{rdb: rdb, visitor: visitor, ttl: ttl}
}

// DialRedis connects to url (redis://...) and checks the connection.
func DialRedis(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	rdb := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (r *RedisStorage) key(name string) string {
	return redisKeyPrefix + r.visitor + ":" + name
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := r.rdb.Get(ctx, r.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
