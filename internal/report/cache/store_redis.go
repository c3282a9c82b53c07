package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key namespace for serialized reports.
	reportKeyPrefix = "pulse:reports:"

	// scanBatch is the COUNT hint for pattern invalidation scans.
	scanBatch = 200
)

// Store is the key-value cache the reporting façade writes serialized
// reports through.
type Store interface {
	// Get returns the cached value. A read failure is a miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for ttl (TTLDefault when ttl <= 0). Write
	// failures are logged and swallowed.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// DeletePattern removes all keys matching the glob pattern. Exposed for
	// out-of-scope collaborators (privacy deletion); report computers never
	// call it.
	DeletePattern(ctx context.Context, pattern string) error
}

// RedisStore is the production Store. The client lifecycle is managed by
// the caller.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

func WithLogger(logger *slog.Logger) RedisStoreOption {
	return func(s *RedisStore) {
		s.logger = logger
	}
}

func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.client.Get(ctx, reportKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.logger != nil {
			s.logger.WarnContext(ctx, "cache read failed, treating as miss",
				"key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = TTLDefault
	}
	if err := s.client.Set(ctx, reportKeyPrefix+key, value, ttl).Err(); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "cache write failed",
			"key", key, "error", err)
	}
}

func (s *RedisStore) DeletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, reportKeyPrefix+pattern, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
