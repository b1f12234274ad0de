package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	RedisHelper *redisUtil
)

type redisUtil struct {
	client *redis.Client
}

// InitRedis connects to url and installs RedisHelper. rediss:// URLs get TLS
// from redis.ParseURL.
func InitRedis(ctx context.Context, url string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}

	redisClient := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		_ = redisClient.Close()
		return err
	}

	log.Info().Str("addr", opts.Addr).Msg("Connected to Redis")

	RedisHelper = NewRedisHelper(redisClient)
	return nil
}

func NewRedisHelper(client *redis.Client) *redisUtil {
	return &redisUtil{client: client}
}

func (r *redisUtil) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	err := r.client.Set(ctx, key, value, expiration).Err()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Redis SET failed")
	}
	return err
}

func (r *redisUtil) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Redis GET failed")
		return "", err
	}
	return val, nil
}

// SetStruct stores value as JSON.
func (r *redisUtil) SetStruct(ctx context.Context, key string, value any, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Set(ctx, key, raw, expiration)
}

// GetAsStruct decodes the JSON stored under key into target. It reports
// false when the key is missing.
func (r *redisUtil) GetAsStruct(ctx context.Context, key string, target any) (bool, error) {
	val, err := r.Get(ctx, key)
	if err != nil || val == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), target); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisUtil) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Redis DEL failed")
	}
	return err
}

func (r *redisUtil) Exists(ctx context.Context, key string) bool {
	count, err := r.client.Exists(ctx, key).Result()
	return err == nil && count > 0
}

func (r *redisUtil) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisUtil) Close() error {
	return r.client.Close()
}
