package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// Enabled reports whether a Redis client was configured. Callers treat an
// absent client as a cache miss.
func Enabled() bool {
	return Rdb != nil
}

// SetMarshalledJSON stores value as JSON under key. Failures are logged and
// swallowed; caching is best-effort.
func SetMarshalledJSON(ctx context.Context, key string, value any, expiration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal value for redis")
		return
	}
	if err := Rdb.Set(ctx, key, data, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to add key to redis")
	}
}

// GetUnmarshalledJSON loads key into out. Returns false on a miss or any
// decode failure.
func GetUnmarshalledJSON(ctx context.Context, key string, out any) bool {
	data, err := Rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding undecodable redis entry")
		return false
	}
	return true
}
