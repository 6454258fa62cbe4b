package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the CacheStore backed by Redis. Every entry carries the
// store TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func assessmentKey(id string) string {
	return fmt.Sprintf("assessment:%s", id)
}

func (r *RedisStore) Set(ctx context.Context, a *Assessment) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}
	return r.client.Set(ctx, assessmentKey(a.ID), data, r.ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Assessment, error) {
	return r.read(r.client.Get(ctx, assessmentKey(id)), id)
}

// Take uses GETDEL, so it needs Redis 6.2 or newer.
func (r *RedisStore) Take(ctx context.Context, id string) (*Assessment, error) {
	return r.read(r.client.GetDel(ctx, assessmentKey(id)), id)
}

func (r *RedisStore) read(cmd *redis.StringCmd, id string) (*Assessment, error) {
	data, err := cmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrAssessmentNotFound, id)
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	var a Assessment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
	}
	return &a, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, assessmentKey(id)).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
