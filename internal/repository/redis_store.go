package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/studyhub/progress/internal/domain"
)

// redisStore implements domain.ProgressStore on plain redis strings
type redisStore struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisStore creates a progress store whose keys live under namespace
func NewRedisStore(rdb *redis.Client, namespace string) domain.ProgressStore {
	return &redisStore{rdb: rdb, namespace: namespace}
}

func (r *redisStore) key(key string) string {
	if r.namespace == "" {
		return key
	}
	return r.namespace + ":" + key
}

// Read gets the value stored under key; redis.Nil means not found
func (r *redisStore) Read(ctx context.Context, key string) (string, bool, error) {
	value, err := r.rdb.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Write sets the value under key without expiry
func (r *redisStore) Write(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
