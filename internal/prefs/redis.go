package prefs

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "prefs:"

// RedisStore persists preferences in Redis under a "prefs:" prefix.
// Preferences never expire.
type RedisStore struct {
	client *goredis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps a connected Redis client.
func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNotFound
	}
	return value, err
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}
