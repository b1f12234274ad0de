package cache

import (
	"context"
	"slices"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const PlaySpecKeyPrefix = "playspec:"

// PlaySpecStore remembers AI results so the same article text is only
// analyzed once. Failures are logged and reported as misses.
type PlaySpecStore interface {
	Get(ctx context.Context, key string) (*model.PlaySpec, bool)
	Set(ctx context.Context, key string, spec *model.PlaySpec)
}

type MemoryPlaySpecStore struct {
	items *cache.Cache
}

func NewMemoryPlaySpecStore(items *cache.Cache) *MemoryPlaySpecStore {
	return &MemoryPlaySpecStore{items: items}
}

func (s *MemoryPlaySpecStore) Get(_ context.Context, key string) (*model.PlaySpec, bool) {
	val, found := s.items.Get(key)
	if !found {
		return nil, false
	}
	spec, ok := val.(*model.PlaySpec)
	if !ok {
		return nil, false
	}
	return clonePlaySpec(spec), true
}

func (s *MemoryPlaySpecStore) Set(_ context.Context, key string, spec *model.PlaySpec) {
	s.items.Set(key, clonePlaySpec(spec), cache.DefaultExpiration)
}

// StructStore is the slice of the redis helper the store needs.
type StructStore interface {
	SetStruct(ctx context.Context, key string, value any, expiration time.Duration) error
	GetAsStruct(ctx context.Context, key string, target any) (bool, error)
}

type RedisPlaySpecStore struct {
	redis StructStore
	ttl   time.Duration
}

func NewRedisPlaySpecStore(redis StructStore, ttl time.Duration) *RedisPlaySpecStore {
	return &RedisPlaySpecStore{redis: redis, ttl: ttl}
}

func (s *RedisPlaySpecStore) Get(ctx context.Context, key string) (*model.PlaySpec, bool) {
	var spec model.PlaySpec
	found, err := s.redis.GetAsStruct(ctx, key, &spec)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Play spec store read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &spec, true
}

func (s *RedisPlaySpecStore) Set(ctx context.Context, key string, spec *model.PlaySpec) {
	if err := s.redis.SetStruct(ctx, key, spec, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Play spec store write failed")
	}
}

func clonePlaySpec(spec *model.PlaySpec) *model.PlaySpec {
	out := *spec
	out.Indicators = slices.Clone(spec.Indicators)
	out.Levels = slices.Clone(spec.Levels)
	out.Zones = slices.Clone(spec.Zones)
	out.Entries = slices.Clone(spec.Entries)
	out.Stops = slices.Clone(spec.Stops)
	out.Targets = slices.Clone(spec.Targets)
	return &out
}
