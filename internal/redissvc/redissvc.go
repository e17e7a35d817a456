// Package redissvc wraps the Redis client used for short-lived caching.
package redissvc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

func (s *RedisService) Ctx() context.Context {
	return s.ctx
}

// GetJSON loads a cached value into dest. The second return is false on a
// cache miss.
func (s *RedisService) GetJSON(key string, dest any) (bool, error) {
	data, err := s.rdb.Get(s.ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, dest)
}

// SetJSON caches a value under key for ttl.
func (s *RedisService) SetJSON(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(s.ctx, key, data, ttl).Err()
}

// Invalidate drops a cached key.
func (s *RedisService) Invalidate(key string) error {
	return s.rdb.Del(s.ctx, key).Err()
}
