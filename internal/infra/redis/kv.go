package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// KV is a Redis-backed implementation of store.KV. Values are plain JSON
// strings; a zero TTL keeps them forever, which is the default for quest
// catalogs and progress records.
type KV struct {
	client *redis.Client
	ttl    time.Duration
}

func NewKV(client *redis.Client, ttl time.Duration) *KV {
	return &KV{client: client, ttl: ttl}
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *KV) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
