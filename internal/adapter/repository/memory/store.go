package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/iho/ledgerkv/internal/domain"
	"github.com/iho/ledgerkv/internal/usecase"
)

// defaultScanCount matches the Redis HSCAN default.
const defaultScanCount = 10

// Store is an in-process usecase.Store. A single mutex serializes every command,
// so conditional groups are trivially atomic. Contents are lost on restart.
type Store struct {
	mu      sync.RWMutex
	hashes  map[string]map[string]string
	strings map[string]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		hashes:  make(map[string]map[string]string),
		strings: make(map[string]string),
	}
}

var _ usecase.Store = (*Store)(nil)

func (s *Store) HSet(ctx context.Context, key, field, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.hset(key, field, value)
	return nil
}

func (s *Store) HGet(ctx context.Context, key, field string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.hashes[key][field]
	return val, ok, nil
}

func (s *Store) HExists(ctx context.Context, key, field string) (bool, error) {
	_, ok, err := s.HGet(ctx, key, field)
	return ok, err
}

func (s *Store) HDel(ctx context.Context, key, field string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hdel(key, field), nil
}

func (s *Store) HLen(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.hashes[key])), nil
}

func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.hashes[key]))
	for f, v := range s.hashes[key] {
		out[f] = v
	}
	return out, nil
}

func (s *Store) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := parseCounter(s.hashes[key][field])
	if err != nil {
		return 0, fmt.Errorf("hincrby %s %s: %w", key, field, err)
	}

	next, err := domain.AddMinorUnits(current, delta)
	if err != nil {
		return 0, fmt.Errorf("hincrby %s %s: %w", key, field, err)
	}
	s.hset(key, field, strconv.FormatInt(next, 10))
	return next, nil
}

// HScan pages through fields in sorted order; the cursor is an offset into that order.
// Fields inserted or deleted before the cursor between calls shift later fields, so
// a concurrently mutated hash may yield a field twice or not at all.
func (s *Store) HScan(ctx context.Context, key string, cursor uint64, count int64) (map[string]string, uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if count <= 0 {
		count = defaultScanCount
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	hash := s.hashes[key]
	fields := make([]string, 0, len(hash))
	for f := range hash {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	if cursor >= uint64(len(fields)) {
		return map[string]string{}, 0, nil
	}

	end := cursor + uint64(count)
	if end >= uint64(len(fields)) {
		end = uint64(len(fields))
	}

	page := make(map[string]string, end-cursor)
	for _, f := range fields[cursor:end] {
		page[f] = hash[f]
	}

	if end == uint64(len(fields)) {
		return page, 0, nil
	}
	return page, end, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.strings[key]
	return val, ok, nil
}

func (s *Store) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := parseCounter(s.strings[key])
	if err != nil {
		return 0, fmt.Errorf("incrby %s: %w", key, err)
	}

	next, err := domain.AddMinorUnits(current, delta)
	if err != nil {
		return 0, fmt.Errorf("incrby %s: %w", key, err)
	}
	s.strings[key] = strconv.FormatInt(next, 10)
	return next, nil
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.hashes, key)
		delete(s.strings, key)
	}
	return nil
}

func (s *Store) Group() usecase.Group {
	return &group{store: s}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) hset(key, field, value string) {
	hash, ok := s.hashes[key]
	if !ok {
		hash = make(map[string]string)
		s.hashes[key] = hash
	}
	hash[field] = value
}

// hdel mirrors Redis: removing the last field removes the key.
func (s *Store) hdel(key, field string) bool {
	hash, ok := s.hashes[key]
	if !ok {
		return false
	}
	if _, ok := hash[field]; !ok {
		return false
	}

	delete(hash, field)
	if len(hash) == 0 {
		delete(s.hashes, key)
	}
	return true
}

func parseCounter(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not an integer", raw)
	}
	return n, nil
}
