package repository

import (
	"context"
	"fmt"
	"time"

	"artnotifier/pkg/cache"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	_dedupKeyPrefix = "dedup"
	_leaseKeyPrefix = "lease:deliver"
)

type redisClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// CacheRepository holds short-lived coordination keys in Redis: event dedup
// markers and delivery leases. It never caches preferences or counts.
type CacheRepository struct {
	rdb      redisClient
	dedupTTL time.Duration
	log      *zap.Logger
}

func NewCacheRepository(rdb redisClient, dedupTTL time.Duration, log *zap.Logger) *CacheRepository {
	return &CacheRepository{rdb: rdb, dedupTTL: dedupTTL, log: log}
}

// AcquireOnce reports whether this is the first time scope sees eventID.
// When Redis is unreachable it lets the event through.
func (s *CacheRepository) AcquireOnce(ctx context.Context, scope, eventID string) bool {
	key := cache.Key(_dedupKeyPrefix, scope, eventID)

	ok, err := s.rdb.SetNX(ctx, key, 1, s.dedupTTL).Result()
	if err != nil {
		s.log.Warn("dedup check failed, allowing processing",
			zap.String("scope", scope),
			zap.String("event_id", eventID),
			zap.Error(err),
		)
		return true
	}
	if !ok {
		s.log.Info("skipped duplicated event",
			zap.String("scope", scope),
			zap.String("event_id", eventID),
		)
	}
	return ok
}

// ForgetEvent drops a dedup marker so a failed handler can be retried.
func (s *CacheRepository) ForgetEvent(ctx context.Context, scope, eventID string) error {
	const op = "repository.CacheRepository.ForgetEvent"

	if err := s.rdb.Del(ctx, cache.Key(_dedupKeyPrefix, scope, eventID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AcquireLease claims the delivery hand-off of one notification for ttl.
func (s *CacheRepository) AcquireLease(ctx context.Context, id uuid.UUID, ttl time.Duration) (bool, error) {
	const op = "repository.CacheRepository.AcquireLease"

	ok, err := s.rdb.SetNX(ctx, cache.Key(_leaseKeyPrefix, id), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

func (s *CacheRepository) ReleaseLease(ctx context.Context, id uuid.UUID) error {
	const op = "repository.CacheRepository.ReleaseLease"

	if err := s.rdb.Del(ctx, cache.Key(_leaseKeyPrefix, id)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
