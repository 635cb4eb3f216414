package codestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio/models"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "verification:"

// deleteIfUnchanged removes the key only if it still holds the value that was read,
// so evicting an expired record never drops a newer one written in between.
var deleteIfUnchanged = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore is a Store shared by every instance pointing at the same Redis DB.
// Keys outlive the code by the retention window so that a late Get can still
// report ErrExpired instead of ErrNotFound; Redis drops them afterwards.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
	now       Clock
}

func NewRedisStore(client *redis.Client, retention time.Duration, now Clock) *RedisStore {
	return &RedisStore{client: client, retention: retention, now: orNow(now)}
}

func key(email string) string {
	return keyPrefix + email
}

func (s *RedisStore) Put(ctx context.Context, record models.PendingVerification) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("codestore: failed to encode record: %w", err)
	}
	ttl := record.ExpiresAt.Sub(s.now()) + s.retention
	if ttl < time.Second {
		ttl = time.Second
	}
	if err := s.client.Set(ctx, key(record.Email), data, ttl).Err(); err != nil {
		return fmt.Errorf("codestore: failed to save record: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, email string) (*models.PendingVerification, error) {
	data, err := s.client.Get(ctx, key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("codestore: failed to read record: %w", err)
	}

	var record models.PendingVerification
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("codestore: failed to decode record: %w", err)
	}
	if record.Expired(s.now()) {
		if err := deleteIfUnchanged.Run(ctx, s.client, []string{key(email)}, data).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("codestore: failed to evict expired record: %w", err)
		}
		return nil, ErrExpired
	}
	return &record, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("codestore: failed to delete record: %w", err)
	}
	return nil
}
