package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

func Get[T any](rdb *redis.Client, ctx context.Context, key string) (*T, error) {
	data, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var value T
	if err := json.Unmarshal([]byte(data), &value); err != nil {
		return nil, err
	}

	return &value, nil
}

func SetJSON(rdb *redis.Client, ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return rdb.Set(ctx, key, data, ttl).Err()
}

func Del(rdb *redis.Client, ctx context.Context, keys ...string) error {
	return rdb.Del(ctx, keys...).Err()
}

// TrackKey records a cache key in the set at setKey so every key
// written for one owner can be dropped together on invalidation.
func TrackKey(rdb *redis.Client, ctx context.Context, setKey, key string, ttl time.Duration) error {
	if err := rdb.SAdd(ctx, setKey, key).Err(); err != nil {
		return err
	}
	return rdb.Expire(ctx, setKey, ttl).Err()
}

// DelTracked deletes every key recorded in the set at setKey, and the
// set itself.
func DelTracked(rdb *redis.Client, ctx context.Context, setKey string) error {
	keys, err := rdb.SMembers(ctx, setKey).Result()
	if err != nil {
		return err
	}

	return rdb.Del(ctx, append(keys, setKey)...).Err()
}
