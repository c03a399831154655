package idempotency

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "crm:webhook:idempotency:"

// RedisStore usa SETNX com TTL, atômico entre réplicas
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, "1", ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "idempotency: redis setnx")
	}
	return ok, nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	return errors.Wrap(s.client.Del(ctx, s.prefix+key).Err(), "idempotency: redis del")
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
