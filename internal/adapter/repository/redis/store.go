package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/iho/ledgerkv/internal/domain"
	"github.com/iho/ledgerkv/internal/usecase"
)

// Store implements usecase.Store on top of go-redis.
//
// Conditional groups run as a Lua script, so every key of a group must live on one
// node. With a cluster client the three ledger keys hash to different slots and
// conditional groups fail with CROSSSLOT.
type Store struct {
	client redis.UniversalClient
}

// NewStore creates a new Store.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

var _ usecase.Store = (*Store)(nil)

// wrapError classifies a client error. Replies from the server are passed through;
// everything else (dial, timeout, closed pool) is reported as store unavailable.
func wrapError(op, key string, err error) error {
	var replyErr redis.Error
	if errors.As(err, &replyErr) {
		if strings.Contains(replyErr.Error(), "would overflow") {
			return fmt.Errorf("%w: redis %s %s: %w", domain.ErrAmountOverflow, op, key, err)
		}
		return fmt.Errorf("redis %s %s: %w", op, key, err)
	}

	return fmt.Errorf("%w: redis %s %s: %w", domain.ErrStoreUnavailable, op, key, err)
}

// HSet sets a hash field.
func (s *Store) HSet(ctx context.Context, key, field, value string) error {
	if err := s.client.HSet(ctx, key, field, value).Err(); err != nil {
		return wrapError("hset", key, err)
	}
	return nil
}

// HGet reads a hash field.
func (s *Store) HGet(ctx context.Context, key, field string) (string, bool, error) {
	val, err := s.client.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapError("hget", key, err)
	}
	return val, true, nil
}

// HExists reports whether a hash field is set.
func (s *Store) HExists(ctx context.Context, key, field string) (bool, error) {
	exists, err := s.client.HExists(ctx, key, field).Result()
	if err != nil {
		return false, wrapError("hexists", key, err)
	}
	return exists, nil
}

// HDel deletes a hash field and reports whether it existed.
func (s *Store) HDel(ctx context.Context, key, field string) (bool, error) {
	n, err := s.client.HDel(ctx, key, field).Result()
	if err != nil {
		return false, wrapError("hdel", key, err)
	}
	return n > 0, nil
}

// HLen counts hash fields.
func (s *Store) HLen(ctx context.Context, key string) (int64, error) {
	n, err := s.client.HLen(ctx, key).Result()
	if err != nil {
		return 0, wrapError("hlen", key, err)
	}
	return n, nil
}

// HGetAll reads every field of a hash.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, wrapError("hgetall", key, err)
	}
	return fields, nil
}

// HIncrBy atomically increments an integer hash field.
func (s *Store) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	n, err := s.client.HIncrBy(ctx, key, field, delta).Result()
	if err != nil {
		return 0, wrapError("hincrby", key, err)
	}
	return n, nil
}

// HScan returns one page of hash fields using the native HSCAN cursor.
func (s *Store) HScan(ctx context.Context, key string, cursor uint64, count int64) (map[string]string, uint64, error) {
	flat, next, err := s.client.HScan(ctx, key, cursor, "", count).Result()
	if err != nil {
		return nil, 0, wrapError("hscan", key, err)
	}

	fields := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		fields[flat[i]] = flat[i+1]
	}

	return fields, next, nil
}

// Get reads a string key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapError("get", key, err)
	}
	return val, true, nil
}

// IncrBy atomically increments an integer key.
func (s *Store) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	n, err := s.client.IncrBy(ctx, key, delta).Result()
	if err != nil {
		return 0, wrapError("incrby", key, err)
	}
	return n, nil
}

// Del removes keys. Missing keys are ignored.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return wrapError("del", keys[0], err)
	}
	return nil
}

// Group starts a grouped write.
func (s *Store) Group() usecase.Group {
	return &group{client: s.client}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return wrapError("ping", "", err)
	}
	return nil
}
