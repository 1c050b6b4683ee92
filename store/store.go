package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var (
	// ErrUnavailable wraps any Redis infrastructure failure (network,
	// timeout). Callers may retry; the store itself never does.
	ErrUnavailable = errors.New("session store unavailable")
	// ErrInvalidArgument is returned for empty keys/values or
	// non-positive TTLs, before any network call is attempted.
	ErrInvalidArgument = errors.New("invalid store argument")
)

const scanBatchSize = 100

// Store is a thin client over a shared TTL key-value service. It holds
// no mutable state of its own and is safe for concurrent use.
type Store struct {
	redis   redis.UniversalClient
	timeout time.Duration
	log     zerolog.Logger
}

// New wraps the given Redis client. timeout bounds every individual
// store call; a non-positive value falls back to three seconds.
func New(client redis.UniversalClient, timeout time.Duration, log zerolog.Logger) *Store {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Store{redis: client, timeout: timeout, log: log}
}

func (s *Store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// Set writes value under key with the given TTL. Empty key, empty value,
// or non-positive TTL fail fast with [ErrInvalidArgument].
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" || value == "" {
		return fmt.Errorf("%w: key and value must be non-empty", ErrInvalidArgument)
	}
	if ttl <= 0 {
		return fmt.Errorf("%w: ttl must be greater than zero", ErrInvalidArgument)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to set session record")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Get returns the stored value for key. Absence is signalled by the
// second return value, not by an error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, fmt.Errorf("%w: key must be non-empty", ErrInvalidArgument)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	value, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		s.log.Error().Err(err).Str("key", key).Msg("failed to get session record")
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, true, nil
}

// Delete removes key. Deleting a key that does not exist is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: key must be non-empty", ErrInvalidArgument)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to delete session record")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// DeleteByPattern enumerates keys matching the glob pattern via SCAN and
// deletes them in batches, returning the number of keys deleted. A
// pattern with no matches is not an error. Deletion of an individual
// batch is best-effort: a failed DEL is logged and the scan continues.
func (s *Store) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if strings.TrimSpace(pattern) == "" {
		return 0, fmt.Errorf("%w: pattern must be non-empty", ErrInvalidArgument)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := s.redis.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return deleted, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		if len(keys) > 0 {
			n, err := s.redis.Del(ctx, keys...).Result()
			if err != nil {
				s.log.Error().Err(err).Str("pattern", pattern).Msg("failed to delete batch during wildcard revoke")
			} else {
				deleted += int(n)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return deleted, nil
}

// Ping reports point-in-time availability of the backing Redis.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
