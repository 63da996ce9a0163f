package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a Redis server. Keys are namespaced with
// prefix so the store can share a database with the projections.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. A zero ttl keeps keys forever.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(k string) string { return s.prefix + k }

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, s.key(key), value, s.ttl).Err()
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}

// Append pushes and trims inside MULTI/EXEC, so concurrent writers on any
// number of instances never lose an entry.
func (s *RedisStore) Append(ctx context.Context, key string, value []byte, limit int) error {
	k := s.key(key)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, value)
		if limit > 0 {
			pipe.LTrim(ctx, k, int64(-limit), -1)
		}
		if s.ttl > 0 {
			pipe.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	return err
}

func (s *RedisStore) List(ctx context.Context, key string) ([][]byte, error) {
	vals, err := s.rdb.LRange(ctx, s.key(key), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		out = append(out, []byte(v))
	}
	return out, nil
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
